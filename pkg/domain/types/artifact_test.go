package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/opencity-lab/musette/pkg/domain/types"
)

func TestParseArtifactID(t *testing.T) {
	id, err := types.ParseArtifactID("42")
	gt.NoError(t, err).Required()
	gt.Value(t, id).Equal(types.ArtifactID(42))

	_, err = types.ParseArtifactID("abc")
	gt.Error(t, err)

	_, err = types.ParseArtifactID("-5")
	gt.Error(t, err)

	_, err = types.ParseArtifactID("0")
	gt.Error(t, err)
}

func TestParseArtifactKind(t *testing.T) {
	for _, kind := range types.AllArtifactKinds() {
		parsed, err := types.ParseArtifactKind(kind.String())
		gt.NoError(t, err).Required()
		gt.Value(t, parsed).Equal(kind)
	}

	// The wildcard is a valid query token but not a storable kind
	parsed, err := types.ParseArtifactKind("artifact")
	gt.NoError(t, err).Required()
	gt.Value(t, parsed).Equal(types.KindAny)
	gt.Bool(t, types.KindAny.IsValid()).False()

	_, err = types.ParseArtifactKind("gadget")
	gt.Error(t, err)
}
