package main

import (
	"encoding/json"

	"github.com/urfave/cli/v2"

	"github.com/samvad-hq/catalog-client/internal/app"
	"github.com/samvad-hq/catalog-client/pkg/catalog"
)

func provisionCmd() *cli.Command {
	return &cli.Command{
		Name:      "provision",
		Usage:     "create or update a resource, upload its file and start a load",
		UsageText: "catalogctl provision --definition resource.yaml --upload lineage.csv --load <RESOURCE>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "definition",
				Usage: "Resource definition file (YAML or JSON); created or replaces the existing one.",
			},
			&cli.StringFlag{
				Name:  "upload",
				Usage: "Local file to upload after the definition is applied.",
			},
			&cli.StringFlag{
				Name:  "upload-name",
				Usage: "File name recorded by the catalog (defaults to the local base name).",
			},
			&cli.StringFlag{
				Name:        "scanner",
				Value:       "LineageScanner",
				DefaultText: "LineageScanner",
				Usage:       "Scanner id for the uploaded file.",
			},
			&cli.BoolFlag{
				Name:  "load",
				Usage: "Start a load job once the other steps succeed.",
			},
		},
		Action: withRuntime(func(c *cli.Context, rt *runtime) error {
			name, err := resourceArg(c)
			if err != nil {
				return err
			}

			req := app.ProvisionRequest{
				ResourceName: name,
				UploadPath:   c.String("upload"),
				UploadName:   c.String("upload-name"),
				ScannerID:    c.String("scanner"),
				Load:         c.Bool("load"),
			}
			if path := c.String("definition"); path != "" {
				def, err := catalog.LoadDefinition(path)
				if err != nil {
					return err
				}
				req.Definition = def
			}

			p, err := app.NewProvisioner(rt.client, rt.log)
			if err != nil {
				return err
			}
			report, err := p.Run(c.Context, req)
			if err != nil {
				return err
			}
			raw, err := json.Marshal(report)
			if err != nil {
				return err
			}
			return rt.printDocument(catalog.Document(raw))
		}),
	}
}
