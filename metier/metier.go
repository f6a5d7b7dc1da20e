// Package metier holds the business computation.
package metier

import (
	"errors"

	"go.uber.org/zap"

	"github.com/assurrussa/dilab/dao"
)

// Factor is the constant the fetched value is multiplied by.
const Factor = 23

var ErrDataSourceNotSet = errors.New("metier: data source not set")

type Calculator interface {
	Compute() (float64, error)
}

var _ Calculator = (*Impl)(nil)

// Impl computes on the value of a single DataSource. The source is attached
// either at construction or with SetDataSource before the first Compute.
type Impl struct {
	ds  dao.DataSource
	log *zap.Logger
}

// New returns a Calculator without a DataSource, for setter injection.
func New() *Impl {
	return &Impl{log: zap.L().Named("metier")}
}

// NewCalculator returns a Calculator bound to ds.
func NewCalculator(ds dao.DataSource) *Impl {
	m := New()
	m.ds = ds
	return m
}

func (m *Impl) SetDataSource(ds dao.DataSource) {
	m.ds = ds
}

func (m *Impl) DataSource() dao.DataSource {
	return m.ds
}

func (m *Impl) Compute() (float64, error) {
	if m.ds == nil {
		return 0, ErrDataSourceNotSet
	}
	data := m.ds.FetchValue()
	m.logger().Debug("computing", zap.Float64("data", data))
	return data * Factor, nil
}

func (m *Impl) logger() *zap.Logger {
	if m.log == nil {
		return zap.L()
	}
	return m.log
}
