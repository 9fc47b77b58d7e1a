package main

import "github.com/datazip-inc/bqoutput"

func main() {
	bqoutput.Run()
}
