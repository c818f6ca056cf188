package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/samvad-hq/catalog-client/internal/logger"
	"github.com/samvad-hq/catalog-client/pkg/catalog"
)

// CatalogAPI is the subset of catalog.Client the provisioner drives.
type CatalogAPI interface {
	GetResource(ctx context.Context, name string, includeSensitive bool) (catalog.Result[catalog.Document], error)
	CreateResource(ctx context.Context, name string, body any) (int, error)
	UpdateResource(ctx context.Context, name string, body any) (int, error)
	UploadResourceFile(ctx context.Context, name, fileName, filePath, scannerID string) (int, error)
	ExecuteResourceLoad(ctx context.Context, name string) (catalog.Result[catalog.Document], error)
}

// ProvisionRequest describes one create-or-update, upload and load pass for a resource.
type ProvisionRequest struct {
	ResourceName string
	// Definition is created or replaces the existing definition. Nil skips the step.
	Definition json.RawMessage
	// UploadPath is a local file to attach; UploadName defaults to its base name.
	UploadPath string
	UploadName string
	ScannerID  string
	Load       bool
}

// ProvisionReport summarises what a pass did.
type ProvisionReport struct {
	ResourceName string           `json:"resourceName"`
	Created      bool             `json:"created"`
	Updated      bool             `json:"updated"`
	Uploaded     bool             `json:"uploaded"`
	Job          catalog.Document `json:"job,omitempty"`
}

// Provisioner sequences catalog calls the way lineage loads are usually
// driven: create (or update) the resource, upload its file, then start a scan.
// It stops at the first call the catalog does not answer with 200.
type Provisioner struct {
	client CatalogAPI
	log    logger.Logger
}

// NewProvisioner wires a provisioner around a catalog client.
func NewProvisioner(client CatalogAPI, log logger.Logger) (*Provisioner, error) {
	if client == nil {
		return nil, fmt.Errorf("catalog client must not be nil")
	}
	if c, ok := client.(*catalog.Client); ok && c == nil {
		return nil, fmt.Errorf("catalog client must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &Provisioner{client: client, log: log}, nil
}

// Run executes the pass described by req.
func (p *Provisioner) Run(ctx context.Context, req ProvisionRequest) (ProvisionReport, error) {
	if p == nil || p.client == nil {
		return ProvisionReport{}, fmt.Errorf("provisioner is not initialized")
	}
	name := strings.TrimSpace(req.ResourceName)
	if name == "" {
		return ProvisionReport{}, fmt.Errorf("resource name is required")
	}
	if req.UploadPath != "" && strings.TrimSpace(req.ScannerID) == "" {
		return ProvisionReport{}, fmt.Errorf("scanner id is required to upload %s", req.UploadPath)
	}

	report := ProvisionReport{ResourceName: name}
	start := time.Now()
	p.log.InfoObj("provision started", "provision_meta", map[string]any{
		"resource":   name,
		"definition": req.Definition != nil,
		"upload":     req.UploadPath,
		"load":       req.Load,
	})

	if req.Definition != nil {
		if err := p.applyDefinition(ctx, name, req.Definition, &report); err != nil {
			return report, err
		}
	}

	if req.UploadPath != "" {
		uploadName := req.UploadName
		if uploadName == "" {
			uploadName = filepath.Base(req.UploadPath)
		}
		status, err := p.client.UploadResourceFile(ctx, name, uploadName, req.UploadPath, req.ScannerID)
		if err != nil {
			return report, err
		}
		if err := catalog.ExpectOK("upload resource file", status); err != nil {
			return report, err
		}
		report.Uploaded = true
	}

	if req.Load {
		res, err := p.client.ExecuteResourceLoad(ctx, name)
		if err != nil {
			return report, err
		}
		if err := res.Err(); err != nil {
			return report, err
		}
		report.Job = res.Value
	}

	p.log.InfoObj("provision completed", "provision_meta", map[string]any{
		"resource":   name,
		"created":    report.Created,
		"updated":    report.Updated,
		"uploaded":   report.Uploaded,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return report, nil
}

// applyDefinition updates the resource when it exists and creates it on 404.
func (p *Provisioner) applyDefinition(ctx context.Context, name string, def json.RawMessage, report *ProvisionReport) error {
	existing, err := p.client.GetResource(ctx, name, false)
	if err != nil {
		return err
	}

	switch existing.StatusCode {
	case http.StatusOK:
		status, err := p.client.UpdateResource(ctx, name, def)
		if err != nil {
			return err
		}
		if err := catalog.ExpectOK("update resource", status); err != nil {
			return err
		}
		report.Updated = true
	case http.StatusNotFound:
		status, err := p.client.CreateResource(ctx, name, def)
		if err != nil {
			return err
		}
		if err := catalog.ExpectOK("create resource", status); err != nil {
			return err
		}
		report.Created = true
	default:
		return existing.Err()
	}
	return nil
}
