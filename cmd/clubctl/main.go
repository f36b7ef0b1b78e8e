/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/daetalos/track-record-enterprise-sub001/cmd/clubctl/cmd"

func main() {
	cmd.Execute()
}
