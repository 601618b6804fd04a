package main

import "recruiting-portal/cmd/server"

func main() {
	server.Init()
	server.Run()
}
