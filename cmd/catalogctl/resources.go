package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/samvad-hq/catalog-client/pkg/catalog"
	"github.com/samvad-hq/catalog-client/pkg/formatter"
)

func resourcesCmd() *cli.Command {
	return &cli.Command{
		Name:  "resources",
		Usage: "manage catalog resources",
		Subcommands: []*cli.Command{
			resourcesListCmd(),
			resourcesGetCmd(),
			resourcesCreateCmd(),
			resourcesUpdateCmd(),
			resourcesUploadCmd(),
			resourcesLoadCmd(),
		},
	}
}

func resourcesListCmd() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "list all resources",
		UsageText: "catalogctl --catalog-url <URL> resources list",
		Action: withRuntime(func(c *cli.Context, rt *runtime) error {
			res, err := rt.client.ListResources(c.Context)
			if err != nil {
				return err
			}
			if err := res.Err(); err != nil {
				return err
			}
			var rows [][]string
			for _, r := range res.Value.ResourceSummaries() {
				rows = append(rows, []string{r.Name, r.Type, r.Description})
			}
			return rt.printTable(formatter.TableContents{
				Headers: []string{"name", "type", "description"},
				Data:    rows,
			})
		}),
	}
}

func resourcesGetCmd() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "display a resource definition",
		UsageText: "catalogctl resources get [--sensitive] <RESOURCE>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "sensitive",
				Usage: "Include sensitive connection options.",
			},
		},
		Action: withRuntime(func(c *cli.Context, rt *runtime) error {
			name, err := resourceArg(c)
			if err != nil {
				return err
			}
			res, err := rt.client.GetResource(c.Context, name, c.Bool("sensitive"))
			if err != nil {
				return err
			}
			if err := res.Err(); err != nil {
				return err
			}
			return rt.printDocument(res.Value)
		}),
	}
}

func definitionFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "Resource definition file (YAML or JSON).",
		Required: true,
	}
}

func resourcesCreateCmd() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "create a resource from a definition file",
		UsageText: "catalogctl resources create --file resource.yaml <RESOURCE>",
		Flags:     []cli.Flag{definitionFlag()},
		Action: withRuntime(func(c *cli.Context, rt *runtime) error {
			name, err := resourceArg(c)
			if err != nil {
				return err
			}
			def, err := catalog.LoadDefinition(c.String("file"))
			if err != nil {
				return err
			}
			status, err := rt.client.CreateResource(c.Context, name, def)
			if err != nil {
				return err
			}
			return rt.printStatus("create resource", status)
		}),
	}
}

func resourcesUpdateCmd() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "replace a resource definition",
		UsageText: "catalogctl resources update --file resource.json <RESOURCE>",
		Flags:     []cli.Flag{definitionFlag()},
		Action: withRuntime(func(c *cli.Context, rt *runtime) error {
			name, err := resourceArg(c)
			if err != nil {
				return err
			}
			def, err := catalog.LoadDefinition(c.String("file"))
			if err != nil {
				return err
			}
			status, err := rt.client.UpdateResource(c.Context, name, def)
			if err != nil {
				return err
			}
			return rt.printStatus("update resource", status)
		}),
	}
}

func resourcesUploadCmd() *cli.Command {
	return &cli.Command{
		Name:      "upload",
		Usage:     "upload a file (csv, zip or dsx) to a resource",
		UsageText: "catalogctl resources upload --file lineage.csv --scanner LineageScanner <RESOURCE>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Local file to upload.",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "File name recorded by the catalog (defaults to the local base name).",
			},
			&cli.StringFlag{
				Name:        "scanner",
				Value:       "LineageScanner",
				DefaultText: "LineageScanner",
				Usage:       "Scanner id the file belongs to.",
			},
		},
		Action: withRuntime(func(c *cli.Context, rt *runtime) error {
			name, err := resourceArg(c)
			if err != nil {
				return err
			}
			path := c.String("file")
			fileName := c.String("name")
			if fileName == "" {
				fileName = filepath.Base(path)
			}
			status, err := rt.client.UploadResourceFile(c.Context, name, fileName, path, c.String("scanner"))
			if err != nil {
				return err
			}
			return rt.printStatus("upload resource file", status)
		}),
	}
}

func resourcesLoadCmd() *cli.Command {
	return &cli.Command{
		Name:      "load",
		Usage:     "start a scan (load job) for a resource",
		UsageText: "catalogctl resources load <RESOURCE>",
		Action: withRuntime(func(c *cli.Context, rt *runtime) error {
			name, err := resourceArg(c)
			if err != nil {
				return err
			}
			res, err := rt.client.ExecuteResourceLoad(c.Context, name)
			if err != nil {
				return err
			}
			if err := res.Err(); err != nil {
				return err
			}
			return rt.printDocument(res.Value)
		}),
	}
}

func resourceArg(c *cli.Context) (string, error) {
	if c.Args().Len() < 1 || c.Args().First() == "" {
		_ = cli.ShowCommandHelp(c, c.Command.Name)
		return "", errors.New("resource name must be provided")
	}
	if c.Args().Len() > 1 {
		return "", fmt.Errorf("expected one resource name, got %d arguments", c.Args().Len())
	}
	return c.Args().First(), nil
}
