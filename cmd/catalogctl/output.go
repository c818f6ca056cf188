package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/samvad-hq/catalog-client/pkg/catalog"
	"github.com/samvad-hq/catalog-client/pkg/formatter"
)

// printDocument writes a response body. Documents have no fixed columns, so
// they are always printed as indented JSON.
func (rt *runtime) printDocument(doc catalog.Document) error {
	out, err := formatter.NewJSONFormatter().Format(func() interface{} { return json.RawMessage(doc) })
	if err != nil {
		return fmt.Errorf("format response: %w", err)
	}
	_, err = fmt.Fprintln(rt.out, out)
	return err
}

func (rt *runtime) printTable(contents formatter.TableContents) error {
	out, err := rt.format.Format(func() interface{} { return contents })
	if err != nil {
		return fmt.Errorf("format response: %w", err)
	}
	_, err = fmt.Fprintln(rt.out, out)
	return err
}

func (rt *runtime) printStatus(op string, status int) error {
	if err := catalog.ExpectOK(op, status); err != nil {
		return err
	}
	return rt.printTable(formatter.TableContents{
		Headers: []string{"operation", "status"},
		Data:    [][]string{{op, strconv.Itoa(status)}},
	})
}

func (rt *runtime) printCount(label string, res catalog.Result[catalog.Document]) error {
	if err := res.Err(); err != nil {
		return err
	}
	total, ok := res.Value.TotalCount()
	if !ok {
		return rt.printDocument(res.Value)
	}
	return rt.printTable(formatter.TableContents{
		Headers: []string{"scope", "count"},
		Data:    [][]string{{label, strconv.FormatInt(total, 10)}},
	})
}
