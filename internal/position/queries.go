package position

// Tree queries over the markup grammar. Both patterns only ever consider
// attribute names with the hx- prefix; everything else is invisible to the
// resolver. Error nodes produced by the parser's recovery are matched
// deliberately: a half-typed attribute or an unterminated quote is the
// normal case while the user is typing.

// nameQuery matches attribute names under an element. complete_match marks a
// syntactically finished attribute, unfinished_tag an element the parser had
// to recover, equal_error a stray error node next to the attribute.
var nameQuery = []byte(`
(
        [
            (_
                (tag_name)

                (_)*

                (attribute (attribute_name) @attr_name) @complete_match

                (#eq? @attr_name @complete_match)
            )

            (_
              (tag_name)

              (attribute (attribute_name))

             (ERROR)? @equal_error
            ) @unfinished_tag
        ]

        (#match? @attr_name "hx-.*")
)
`)

// valueQuery matches an hx- attribute together with its value in all the
// shapes error recovery produces: open quote, stray error character, empty
// quoted value, and the completed non-empty value.
var valueQuery = []byte(`
(
        [
          (ERROR
            (tag_name)

            (attribute_name) @attr_name
            (_)
          ) @open_quote_error

          (_
            (tag_name)

            (attribute
              (attribute_name) @attr_name
              (_)
            ) @last_item

            (ERROR) @error_char
          )

          (_
            (tag_name)

            (attribute
              (attribute_name) @attr_name
              (quoted_attribute_value) @quoted_attr_value

              (#eq? @quoted_attr_value "\"\"")
            ) @empty_attribute
          )

          (_
            (tag_name)

            (attribute
              (attribute_name) @attr_name
              (quoted_attribute_value (attribute_value) @attr_value)

              ) @non_empty_attribute
          )
        ]

        (#match? @attr_name "hx-.*")
)`)
