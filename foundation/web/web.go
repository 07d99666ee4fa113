// Package web is a small wrapper around gin that gives handlers an
// error return and a uniform response envelope.
package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler is the signature every application handler implements.
type Handler func(c *Context) error

// Middleware wraps a Handler with pre/post processing.
type Middleware func(Handler) Handler

type App struct {
	*gin.Engine
}

func NewApp() *App {
	return &App{Engine: gin.Default()}
}

func (a *App) handle(method, path string, handler Handler, middlewares ...Middleware) {
	// Wrap the handler from the inside out.
	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i] != nil {
			handler = middlewares[i](handler)
		}
	}

	a.Handle(method, path, func(gc *gin.Context) {
		c := &Context{Context: gc, Ctx: gc.Request.Context()}
		if err := handler(c); err != nil {
			_ = c.RespondError(err)
		}
	})
}

func (a *App) Get(path string, handler Handler, middlewares ...Middleware) {
	a.handle(http.MethodGet, path, handler, middlewares...)
}

func (a *App) Post(path string, handler Handler, middlewares ...Middleware) {
	a.handle(http.MethodPost, path, handler, middlewares...)
}

func (a *App) Put(path string, handler Handler, middlewares ...Middleware) {
	a.handle(http.MethodPut, path, handler, middlewares...)
}

func (a *App) Patch(path string, handler Handler, middlewares ...Middleware) {
	a.handle(http.MethodPatch, path, handler, middlewares...)
}

func (a *App) Delete(path string, handler Handler, middlewares ...Middleware) {
	a.handle(http.MethodDelete, path, handler, middlewares...)
}
