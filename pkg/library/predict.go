package library

import (
	"fmt"

	"github.com/MaxAlex/alphapeptdeep/pkg/core"
)

// Predictor attaches predicted properties (retention time, mobility,
// fragment intensities) to candidate rows. The rows it returns replace the
// library's rows.
type Predictor interface {
	Predict(rows []core.Precursor) ([]core.Precursor, error)
}

// Trainer fits a model to candidate rows.
type Trainer interface {
	Train(rows []core.Precursor) error
}

// Predict hands the finished rows to p.
func (l *Library) Predict(p Predictor) error {
	if err := l.require("Predict", ChargesAssigned); err != nil {
		return err
	}
	rows, err := p.Predict(l.rows)
	if err != nil {
		return fmt.Errorf("prediction failed: %w", err)
	}
	l.rows = rows
	return nil
}

// Train hands the finished rows to t.
func (l *Library) Train(t Trainer) error {
	if err := l.require("Train", ChargesAssigned); err != nil {
		return err
	}
	if err := t.Train(l.rows); err != nil {
		return fmt.Errorf("training failed: %w", err)
	}
	return nil
}
