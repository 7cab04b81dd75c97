package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// BatchResult lists the units that completed and the failures that were skipped.
type BatchResult struct {
	Succeeded []*Result
	Failed    []*UnitError
}

// rfpExtensions are the document types picked up from a batch directory.
var rfpExtensions = map[string]bool{".pdf": true, ".txt": true}

// ListRFPs returns the RFP documents directly inside dir, sorted by name.
func ListRFPs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "read batch directory %s", dir)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !rfpExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// RunBatch runs every RFP in rfpDir through the pipeline, one output subdirectory per
// unit under base.OutDir. The company profile is built once and shared by every unit.
// A failing unit is logged and skipped. An error is returned only when the directory
// holds no RFP, the company profile cannot be built, or every unit failed.
func RunBatch(ctx context.Context, rfpDir string, base Options) (*BatchResult, error) {
	logger := base.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if base.Client == nil {
		return nil, eris.New("pipeline: text-understanding client is required")
	}
	if base.Profile == nil && base.CompanyURL == "" && base.CompanyPDF == "" {
		return nil, eris.New("pipeline: a company URL, PDF or profile is required")
	}

	paths, err := ListRFPs(rfpDir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, eris.Errorf("no RFP documents (.pdf, .txt) in %s", rfpDir)
	}

	outRoot := base.OutDir
	if outRoot == "" {
		outRoot = "."
	}

	if base.Profile == nil {
		shared := base
		shared.OutDir = outRoot
		shared.Store = nil
		r := newRunner(shared, "company")
		res := &Result{}
		if err := r.companyBranch(ctx, res); err != nil {
			return nil, err
		}
		base.Profile = res.Profile
	}

	result := &BatchResult{}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return result, eris.Wrap(err, "batch interrupted")
		}

		opts := base
		opts.RFPPath = path
		opts.OutDir = filepath.Join(outRoot, UnitName(path))

		res, err := Run(ctx, opts)
		if err != nil {
			var unitErr *UnitError
			if !errors.As(err, &unitErr) {
				unitErr = &UnitError{Unit: UnitName(path), Stage: "setup", Cause: err}
			}
			logger.Error("unit failed, skipping",
				zap.String("unit", unitErr.Unit),
				zap.String("stage", unitErr.Stage),
				zap.Error(unitErr.Cause))
			result.Failed = append(result.Failed, unitErr)
			continue
		}
		result.Succeeded = append(result.Succeeded, res)
	}

	if len(result.Succeeded) == 0 {
		return result, eris.Errorf("every unit in %s failed", rfpDir)
	}
	return result, nil
}
