package main

import (
	"log"
)

var (
	GitCommit string
	GitTag    string
	BuildTime string
)

//	@title			Shelfd API
//	@version		1.0
//	@description	A small bookshelf service exposing books and users records over a json api.

//	@host		localhost:8080
//	@BasePath	/
func main() {
	app, err := NewApp()
	if err != nil {
		log.Fatal("application failed to initialized: ", err)
	}
	err = app.Run()
	if err != nil {
		log.Fatal("application exited. check logs for more details.", err)
	}
}
