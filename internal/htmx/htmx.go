// Package htmx is the curated knowledge base for built-in htmx attributes
// and their values: an opaque name -> markdown description table consulted
// by hover and completion.
package htmx

// Entry is one completable item: its literal text and a markdown
// description.
type Entry struct {
	Name string
	Desc string
}

// Attribute returns the description for an attribute name, e.g. "hx-get".
func Attribute(name string) (Entry, bool) {
	for _, entry := range Attributes {
		if entry.Name == name {
			return entry, true
		}
	}
	return Entry{}, false
}

// Value returns the description for a value of the given attribute.
func Value(attribute, value string) (Entry, bool) {
	for _, entry := range Values[attribute] {
		if entry.Name == value {
			return entry, true
		}
	}
	return Entry{}, false
}

// Attributes lists the built-in htmx attributes with short markdown docs.
var Attributes = []Entry{
	{"hx-boost", "Progressively enhances anchors and forms to use AJAX requests instead of full page loads."},
	{"hx-get", "Issues a `GET` request to the given URL and swaps the response into the DOM."},
	{"hx-post", "Issues a `POST` request to the given URL and swaps the response into the DOM."},
	{"hx-put", "Issues a `PUT` request to the given URL and swaps the response into the DOM."},
	{"hx-patch", "Issues a `PATCH` request to the given URL and swaps the response into the DOM."},
	{"hx-delete", "Issues a `DELETE` request to the given URL and swaps the response into the DOM."},
	{"hx-on", "Attaches an inline event handler; `hx-on:click=\"...\"` runs the script on click."},
	{"hx-push-url", "Pushes the request URL (or an explicit URL) into the browser history."},
	{"hx-replace-url", "Replaces the current browser history entry with the request URL."},
	{"hx-select", "CSS selector choosing which part of the response is swapped in."},
	{"hx-select-oob", "CSS selectors for out-of-band parts of the response to swap in."},
	{"hx-swap", "How the response is swapped in relative to the target, e.g. `innerHTML` or `outerHTML`."},
	{"hx-swap-oob", "Marks response content to be swapped somewhere other than the target (out of band)."},
	{"hx-target", "CSS selector (or keyword like `this`, `closest`, `find`) choosing the element to swap into."},
	{"hx-trigger", "Event(s) that trigger the request, e.g. `click`, `change`, `every 2s`."},
	{"hx-vals", "JSON object of extra values to submit with the request."},
	{"hx-confirm", "Shows a confirm() dialog with the given message before issuing the request."},
	{"hx-prompt", "Shows a prompt() dialog before the request; the answer is sent in `HX-Prompt`."},
	{"hx-disable", "Disables htmx processing for this element and its children."},
	{"hx-disabled-elt", "Elements to disable for the duration of the request."},
	{"hx-disinherit", "Controls which attributes child elements do not inherit."},
	{"hx-encoding", "Switches the request encoding, e.g. to `multipart/form-data` for file upload."},
	{"hx-ext", "Enables htmx extensions for this element and its children."},
	{"hx-headers", "JSON object of extra headers to submit with the request."},
	{"hx-history", "Set to `false` to exclude this page's state from the history cache."},
	{"hx-history-elt", "Marks the element whose innerHTML is snapshotted into the history cache."},
	{"hx-include", "CSS selector of additional elements whose values are included in the request."},
	{"hx-indicator", "CSS selector of the element that receives the `htmx-request` class during requests."},
	{"hx-params", "Filters which parameters are submitted: `*`, `none`, or a name list."},
	{"hx-preserve", "Keeps this element unchanged across swaps."},
	{"hx-request", "Configures request aspects such as `timeout` and `credentials`."},
	{"hx-sync", "Synchronizes this request with requests of another element, e.g. `closest form:abort`."},
	{"hx-validate", "Forces HTML5 validation before the request is issued."},
}

// Values maps an attribute name to the values worth suggesting for it.
var Values = map[string][]Entry{
	"hx-swap": {
		{"innerHTML", "Replace the inner html of the target element. The default."},
		{"outerHTML", "Replace the entire target element with the response."},
		{"textContent", "Replace the text content of the target element."},
		{"beforebegin", "Insert the response before the target element."},
		{"afterbegin", "Insert the response before the first child of the target element."},
		{"beforeend", "Insert the response after the last child of the target element."},
		{"afterend", "Insert the response after the target element."},
		{"delete", "Delete the target element regardless of the response."},
		{"none", "Do not swap content; out-of-band items still apply."},
	},
	"hx-target": {
		{"this", "The element bearing the attribute is the target."},
		{"closest", "`closest <selector>` targets the nearest matching ancestor."},
		{"find", "`find <selector>` targets the first matching descendant."},
		{"next", "`next <selector>` targets the next matching element in the DOM."},
		{"previous", "`previous <selector>` targets the previous matching element in the DOM."},
	},
	"hx-trigger": {
		{"click", "Trigger on click."},
		{"change", "Trigger when the value of the element changes."},
		{"submit", "Trigger when the enclosing form is submitted."},
		{"load", "Trigger once when the element is loaded."},
		{"revealed", "Trigger when the element first scrolls into the viewport."},
		{"intersect", "Trigger when the element intersects the viewport."},
		{"every", "`every <timing>` polls on the given interval, e.g. `every 2s`."},
	},
	"hx-boost": {
		{"true", "Enable boosting."},
		{"false", "Disable boosting inherited from an ancestor."},
	},
	"hx-push-url": {
		{"true", "Push the request URL into history."},
		{"false", "Do not push, overriding an inherited setting."},
	},
	"hx-replace-url": {
		{"true", "Replace the current history entry with the request URL."},
		{"false", "Do not replace, overriding an inherited setting."},
	},
	"hx-params": {
		{"*", "Submit all parameters. The default."},
		{"none", "Submit no parameters."},
	},
	"hx-sync": {
		{"drop", "Drop this request if one is already in flight. The default."},
		{"abort", "Drop this request if one is in flight, abort it if a new one arrives."},
		{"replace", "Abort the request in flight and replace it with this one."},
		{"queue", "Queue this request until the one in flight finishes."},
	},
	"hx-encoding": {
		{"multipart/form-data", "Encode the request as multipart form data, enabling file upload."},
	},
	"hx-validate": {
		{"true", "Validate the element before the request."},
	},
	"hx-history": {
		{"false", "Exclude this page from the history cache."},
	},
	"hx-disinherit": {
		{"*", "Children inherit no htmx attributes from this element."},
	},
	"hx-ext": {
		{"json-enc", "Encode request bodies as JSON instead of form data."},
		{"class-tools", "Manipulate classes over time via `classes` attributes."},
		{"remove-me", "Remove the element after a set interval."},
		{"path-deps", "Re-issue requests when other requests touch dependent paths."},
		{"client-side-templates", "Render JSON responses through a client-side template engine."},
	},
}
