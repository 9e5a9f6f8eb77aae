package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/assetregkit/pkg/types"
)

func TestValidateSample(t *testing.T) {
	require.NoError(t, sampleRegistry().Validate())
	require.NoError(t, New(Guid{}, 1, 1).Validate())
}

func TestValidateDetectsDanglingReferences(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(reg *Registry)
		where  string
	}{
		{"asset name", func(reg *Registry) { reg.Assets[0].AssetName = Plain(999) }, "asset[0] asset name"},
		{"asset tags", func(reg *Registry) { reg.Assets[0].Tags.Num = 8 }, "asset[0] tags"},
		{"pair key", func(reg *Registry) { reg.Store.Pairs[2].Name = 999 }, "pair[2] key"},
		{"pair value", func(reg *Registry) { reg.Store.Pairs[0].Value.Index = 1 }, "pair[0] AnsiString value"},
		{"store name", func(reg *Registry) { reg.Store.Names[0] = Numbered(999, 1) }, "store name[0]"},
		{"export path class", func(reg *Registry) { reg.Store.ExportPaths[0].AssetClass = Plain(999) }, "store export path[0] asset class"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reg := sampleRegistry()
			tc.mutate(reg)
			err := reg.Validate()
			require.ErrorIs(t, err, types.ErrIndexOutOfRange)
			require.Contains(t, err.Error(), tc.where)
		})
	}
}

func TestValidateSkipsEmptyTagMaps(t *testing.T) {
	reg := New(Guid{}, 1, 1)
	n := reg.Name("x")
	reg.Assets = []AssetData{{
		ObjectPath: n, PackagePath: n, AssetClass: n, PackageName: n, AssetName: n,
		Tags: MapHandle{PairBegin: 500},
	}}
	require.NoError(t, reg.Validate())
}

func TestDecodeValidatesEagerly(t *testing.T) {
	reg := sampleRegistry()
	reg.Assets[0].Tags.PairBegin = 3
	data := marshal(t, reg)

	_, err := Parse(data, types.DecodeOptions{})
	require.ErrorIs(t, err, types.ErrIndexOutOfRange)

	lazy, err := Parse(data, types.DecodeOptions{SkipValidation: true})
	require.NoError(t, err)
	_, err = lazy.ResolveAsset(&lazy.Assets[0])
	require.ErrorIs(t, err, types.ErrIndexOutOfRange)
}
