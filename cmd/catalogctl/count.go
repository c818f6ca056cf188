package main

import (
	"errors"

	"github.com/urfave/cli/v2"
)

var errMissingURL = errors.New("exactly one url must be provided")

func countCmd() *cli.Command {
	return &cli.Command{
		Name:  "count",
		Usage: "count catalog objects",
		Subcommands: []*cli.Command{
			{
				Name:  "objects",
				Usage: "count every object in the catalog",
				Action: withRuntime(func(c *cli.Context, rt *runtime) error {
					res, err := rt.client.GetCatalogObjectCount(c.Context)
					if err != nil {
						return err
					}
					return rt.printCount("catalog objects", res)
				}),
			},
			{
				Name:  "resources",
				Usage: "count the resources in the catalog",
				Action: withRuntime(func(c *cli.Context, rt *runtime) error {
					res, err := rt.client.GetCatalogResourceCount(c.Context)
					if err != nil {
						return err
					}
					return rt.printCount("catalog resources", res)
				}),
			},
			{
				Name:      "resource-objects",
				Usage:     "count the objects of one resource",
				UsageText: "catalogctl count resource-objects <RESOURCE>",
				Action: withRuntime(func(c *cli.Context, rt *runtime) error {
					name, err := resourceArg(c)
					if err != nil {
						return err
					}
					res, err := rt.client.GetResourceObjectCount(c.Context, name)
					if err != nil {
						return err
					}
					return rt.printCount(name, res)
				}),
			},
		},
	}
}

func getCmd() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "issue an authenticated GET against any catalog URL",
		UsageText: "catalogctl get <URL>",
		Action: withRuntime(func(c *cli.Context, rt *runtime) error {
			if c.Args().Len() != 1 {
				_ = cli.ShowCommandHelp(c, "get")
				return errMissingURL
			}
			res, err := rt.client.GenericGet(c.Context, c.Args().First())
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
