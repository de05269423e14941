// Package web embeds the browser front-end served at "/".
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static
var assets embed.FS

// Static returns the front-end files rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic("web: " + err.Error())
	}
	return sub
}

// Register mounts the page at "/" and its assets under "/assets".
func Register(router *gin.Engine) {
	static := Static()
	index, err := fs.ReadFile(static, "index.html")
	if err != nil {
		panic("web: " + err.Error())
	}
	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	})
	router.StaticFS("/assets", http.FS(static))
}
