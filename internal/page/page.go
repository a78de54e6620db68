//go:build !js

// Package page emulates a browser page whose media survive between
// runs of the ssw command. Every medium is kept in its own bucket of
// one bbolt file.
package page

import (
	"fmt"
	"strings"

	"github.com/jrife/ssw/dom"
	"github.com/jrife/ssw/dom/bbolt"
	"github.com/jrife/ssw/internal/config"
	"github.com/jrife/ssw/storage/plugins/cookie"
	"github.com/jrife/ssw/storage/plugins/domstorage"
	"github.com/jrife/ssw/storage/plugins/userdata"
	"github.com/jrife/ssw/storage/plugins/windowname"
	"go.uber.org/zap"
)

const (
	cookiesKey = "cookie"
	nameKey    = "name"
)

// Page is an emulated page
type Page struct {
	Window  *dom.Window
	storage *bbolt.Storage
	temp    bool
}

// Open opens the page stored at cfg.Path, offering only the
// media cfg enables
func Open(cfg config.Config, logger *zap.Logger) (*Page, error) {
	var session *bbolt.Storage
	var err error

	temp := cfg.Path == ""

	if temp {
		session, err = bbolt.NewTemp()
	} else {
		session, err = bbolt.New(bbolt.Config{Path: cfg.Path})
	}

	if err != nil {
		return nil, err
	}

	page := &Page{Window: &dom.Window{}, storage: session, temp: temp}

	if cfg.Offers(domstorage.Name) {
		page.Window.SessionStorage = session
	}

	if cfg.Offers(userdata.Name) {
		persisted, err := session.Bucket("userdata")

		if err != nil {
			page.Close()

			return nil, err
		}

		page.Window.Root = dom.NewUserDataRoot(persisted)
	}

	if cfg.Offers(cookie.Name) || cfg.Offers(windowname.Name) {
		window, err := session.Bucket("window")

		if err != nil {
			page.Close()

			return nil, err
		}

		if cfg.Offers(cookie.Name) {
			jar, err := newStoredJar(window, logger)

			if err != nil {
				page.Close()

				return nil, err
			}

			page.Window.Cookies = jar
		}

		if cfg.Offers(windowname.Name) {
			page.Window.Name = &storedName{storage: window, logger: logger}
		}
	}

	return page, nil
}

// Close closes the page. A temporary page is deleted.
func (page *Page) Close() error {
	if page.temp {
		return page.storage.Delete()
	}

	return page.storage.Close()
}

// storedJar is a cookie jar whose cookie string is written
// back to storage after every assignment
type storedJar struct {
	*dom.MemoryCookieJar
	storage dom.Storage
	logger  *zap.Logger
}

func newStoredJar(storage dom.Storage, logger *zap.Logger) (*storedJar, error) {
	jar := &storedJar{
		MemoryCookieJar: dom.NewCookieJar(dom.CookieJarConfig{}),
		storage:         storage,
		logger:          logger,
	}

	cookies, _, err := storage.GetItem(cookiesKey)

	if err != nil {
		return nil, fmt.Errorf("could not restore cookies: %w", err)
	}

	for _, pair := range strings.Split(cookies, "; ") {
		if pair != "" {
			jar.MemoryCookieJar.SetCookie(pair)
		}
	}

	return jar, nil
}

func (jar *storedJar) SetCookie(cookie string) {
	jar.MemoryCookieJar.SetCookie(cookie)

	if err := jar.storage.SetItem(cookiesKey, jar.MemoryCookieJar.Cookie()); err != nil {
		jar.logger.Error("could not persist cookies", zap.Error(err))
	}
}

// storedName is a window name kept in storage
type storedName struct {
	storage dom.Storage
	logger  *zap.Logger
}

func (name *storedName) Name() string {
	value, _, err := name.storage.GetItem(nameKey)

	if err != nil {
		name.logger.Error("could not read window name", zap.Error(err))
	}

	return value
}

func (name *storedName) SetName(value string) {
	if err := name.storage.SetItem(nameKey, value); err != nil {
		name.logger.Error("could not persist window name", zap.Error(err))
	}
}
