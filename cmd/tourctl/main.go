package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/vinodrajapaksha/ttms-api/internal/cli"
)

func main() {
	logrus.SetLevel(logrus.WarnLevel)

	if err := cli.NewCLI(cli.Options{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
