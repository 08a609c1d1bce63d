package reporting

import (
	"errors"
	"fmt"

	"github.com/vinodrajapaksha/ttms-api/internal/domain"
)

var (
	ErrInvalidTab       = errors.New("report tab must be daily, weekly or monthly")
	ErrInvalidNav       = errors.New("nav must be prev or next")
	ErrStaleResponse    = errors.New("report response superseded by a newer request")
	ErrNothingToExport  = errors.New("no report has been loaded yet")
	ErrExportFailure    = errors.New("report export failed")
	ErrInvalidTrendSize = errors.New("count must be a positive number")
)

// ExportError is a failed PDF export. The report it was rendering is left as
// it was.
type ExportError struct {
	Tab domain.ReportTab
	Err error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s report: %v", e.Tab, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

func (e *ExportError) Is(target error) bool {
	return target == ErrExportFailure
}
