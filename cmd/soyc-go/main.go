package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"soyc-go/packages/compiler/core"
)

func main() {
	app := &cli.App{
		Name:    "soyc-go",
		Usage:   "make the html structure inside soy templates explicit",
		Version: core.ReleaseVersion.Full,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "enable trace logging of every scan state transition",
			},
		},
		Before: func(c *cli.Context) error {
			logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			switch {
			case c.Bool("trace"):
				logrus.SetLevel(logrus.TraceLevel)
			case c.Bool("debug"):
				logrus.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			structureCommand(),
			flattenCommand(),
			checkCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}
