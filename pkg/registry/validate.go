package registry

import (
	"fmt"

	"github.com/joshuapare/assetregkit/internal/buf"
	"github.com/joshuapare/assetregkit/pkg/types"
)

// Validate checks every table index in the registry: name references
// against Names, pair values against their store table, and non-empty tag
// maps against the pair array. It returns the first violation, wrapped
// around ErrIndexOutOfRange.
func (reg *Registry) Validate() error {
	v := validator{names: reg.names().Len(), store: reg.store()}

	s := v.store
	for i, n := range s.NumberlessNames {
		v.name(n, "store numberless name[%d]", i)
	}
	for i, n := range s.Names {
		v.name(n, "store name[%d]", i)
	}
	for i, ep := range s.NumberlessExportPaths {
		v.exportPath(ep, "store numberless export path[%d]", i)
	}
	for i, ep := range s.ExportPaths {
		v.exportPath(ep, "store export path[%d]", i)
	}
	for i, p := range s.Pairs {
		v.pair(p, i)
	}
	for i := range reg.Assets {
		v.asset(&reg.Assets[i], i)
	}
	return v.err
}

type validator struct {
	names int
	store *Store
	err   error
}

func (v *validator) fail(cause error, where string, args ...any) {
	if v.err != nil {
		return
	}
	v.err = fmt.Errorf("%s: %w", fmt.Sprintf(where, args...),
		types.Wrap(types.ErrKindRange, "index out of range", cause))
}

func (v *validator) name(n NameIndexFlagged, where string, args ...any) {
	if err := buf.CheckIndex(n.Index, v.names); err != nil {
		v.fail(err, where, args...)
	}
}

func (v *validator) exportPath(ep ExportPath, where string, i int) {
	v.name(ep.ObjectPath, where+" object path", i)
	v.name(ep.PackagePath, where+" package path", i)
	v.name(ep.AssetClass, where+" asset class", i)
}

func (v *validator) pair(p Pair, i int) {
	if err := buf.CheckIndex(uint32(p.Name), v.names); err != nil {
		v.fail(err, "pair[%d] key", i)
	}
	if err := buf.CheckIndex(p.Value.Index, v.store.tableLen(p.Value.Type)); err != nil {
		v.fail(err, "pair[%d] %s value", i, p.Value.Type)
	}
}

func (v *validator) asset(a *AssetData, i int) {
	v.name(a.ObjectPath, "asset[%d] object path", i)
	v.name(a.PackagePath, "asset[%d] package path", i)
	v.name(a.AssetClass, "asset[%d] asset class", i)
	v.name(a.PackageName, "asset[%d] package name", i)
	v.name(a.AssetName, "asset[%d] asset name", i)
	if a.Tags.Num == 0 {
		return
	}
	if _, err := buf.CheckRange(len(v.store.Pairs), a.Tags.PairBegin, int(a.Tags.Num)); err != nil {
		v.fail(err, "asset[%d] tags", i)
	}
}
