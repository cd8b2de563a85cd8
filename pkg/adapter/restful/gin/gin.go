// Package gin wraps the gin-gonic engine instantiation, so the config
// adapter can toggle the logger and recovery middlewares without
// importing the gin-gonic module directly. The resource packages which
// serve the dealership REST APIs live in its sub-packages.
package gin

import "github.com/gin-gonic/gin"

type HandlerFunc = gin.HandlerFunc
type Engine = gin.Engine

func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.Use(middlewares...)
	return e
}

func Logger() HandlerFunc {
	return gin.Logger()
}

func Recovery() HandlerFunc {
	return gin.Recovery()
}
