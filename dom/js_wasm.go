//go:build js && wasm

package dom

import (
	"fmt"
	"strings"
	"syscall/js"
	"time"
)

// NewJSWindow binds the media of the page this program runs in.
// Media the browser does not expose are left nil.
func NewJSWindow() *Window {
	global := js.Global()
	window := &Window{}

	if storage, ok := property(global, "sessionStorage"); ok && storage.Truthy() {
		window.SessionStorage = &jsStorage{storage: storage}
	}

	if document, ok := property(global, "document"); ok && document.Truthy() {
		window.Cookies = &jsCookieJar{document: document}
		window.Root = &jsRoot{document: document}
	}

	if name, ok := property(global, "name"); ok && !name.IsUndefined() {
		window.Name = &jsName{window: global}
	}

	return window
}

// property reads a property that may throw, such as
// sessionStorage when storage is disabled by the user.
func property(value js.Value, name string) (result js.Value, ok bool) {
	defer func() {
		if recover() != nil {
			result, ok = js.Undefined(), false
		}
	}()

	return value.Get(name), true
}

func call(value js.Value, method string, args ...interface{}) (result js.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s failed: %v", method, r)
		}
	}()

	return value.Call(method, args...), nil
}

type jsStorage struct {
	storage js.Value
}

func (storage *jsStorage) GetItem(key string) (string, bool, error) {
	value, err := call(storage.storage, "getItem", key)

	if err != nil {
		return "", false, err
	}

	if value.IsNull() || value.IsUndefined() {
		return "", false, nil
	}

	return value.String(), true, nil
}

func (storage *jsStorage) SetItem(key, value string) error {
	_, err := call(storage.storage, "setItem", key, value)

	return err
}

func (storage *jsStorage) RemoveItem(key string) error {
	_, err := call(storage.storage, "removeItem", key)

	return err
}

func (storage *jsStorage) Clear() error {
	_, err := call(storage.storage, "clear")

	return err
}

func (storage *jsStorage) Keys() ([]string, error) {
	length := storage.storage.Get("length").Int()
	keys := make([]string, 0, length)

	for i := 0; i < length; i++ {
		key, err := call(storage.storage, "key", i)

		if err != nil {
			return nil, err
		}

		keys = append(keys, key.String())
	}

	return keys, nil
}

type jsCookieJar struct {
	document js.Value
}

func (jar *jsCookieJar) Cookie() string {
	return jar.document.Get("cookie").String()
}

func (jar *jsCookieJar) SetCookie(cookie string) {
	jar.document.Set("cookie", cookie)
}

type jsRoot struct {
	document js.Value
}

func (root *jsRoot) SupportsBehavior() bool {
	element := root.document.Get("documentElement")

	return element.Truthy() && element.Get("addBehavior").Truthy()
}

func (root *jsRoot) CreateUserDataElement(tag string) (UserDataElement, error) {
	element, err := call(root.document, "createElement", tag)

	if err != nil {
		return nil, err
	}

	if _, err := call(root.document.Get("documentElement"), "appendChild", element); err != nil {
		return nil, err
	}

	if _, err := call(element, "addBehavior", "#default#userData"); err != nil {
		return nil, err
	}

	return &jsElement{element: element}, nil
}

type jsElement struct {
	element js.Value
}

func (element *jsElement) Load(store string) error {
	_, err := call(element.element, "load", store)

	return err
}

func (element *jsElement) Save(store string) error {
	_, err := call(element.element, "save", store)

	return err
}

func (element *jsElement) Attribute(name string) (string, bool) {
	value, err := call(element.element, "getAttribute", name)

	if err != nil || value.IsNull() || value.IsUndefined() {
		return "", false
	}

	return value.String(), true
}

func (element *jsElement) SetAttribute(name, value string) {
	call(element.element, "setAttribute", name, value)
}

func (element *jsElement) RemoveAttribute(name string) {
	call(element.element, "removeAttribute", name)
}

func (element *jsElement) Expire(at time.Time) error {
	element.element.Set("expires", strings.Replace(at.UTC().Format(CookieTimeFormat), "GMT", "UTC", 1))

	return nil
}

type jsName struct {
	window js.Value
}

func (name *jsName) Name() string {
	return name.window.Get("name").String()
}

func (name *jsName) SetName(value string) {
	name.window.Set("name", value)
}
