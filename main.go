package main

import (
	"github.com/ClasicRando/sftp-sync/cmd"
	"github.com/ClasicRando/sftp-sync/cmd/util"
)

func main() {
	defer util.HandlePanic()
	cmd.Execute()
}
