package memory

import (
	"github.com/m-mizutani/tabprep/pkg/domain/interfaces"
	"github.com/m-mizutani/tabprep/pkg/domain/model"
)

// New creates a new in-memory repository
func New() interfaces.CountRepository {
	return &countRepository{
		runs: make(map[string]map[string]*model.CountRecord),
	}
}
