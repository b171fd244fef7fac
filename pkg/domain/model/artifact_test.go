package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/opencity-lab/musette/pkg/domain/model"
	"github.com/opencity-lab/musette/pkg/domain/types"
)

func TestArtifactValidate(t *testing.T) {
	t.Run("valid dataset", func(t *testing.T) {
		a := &model.Artifact{ID: 1, Kind: types.KindDataset, Lang: "english", Tags: []string{"water"}}
		gt.NoError(t, a.Validate())
	})

	t.Run("valid application with scope and age", func(t *testing.T) {
		a := &model.Artifact{ID: 1, Kind: types.KindApplication, Lang: "english", Scope: "Bilbao", MinAge: 13}
		gt.NoError(t, a.Validate())
	})

	t.Run("scope on a non-application is rejected", func(t *testing.T) {
		a := &model.Artifact{ID: 1, Kind: types.KindIdea, Lang: "english", Scope: "Bilbao"}
		gt.Error(t, a.Validate())
	})

	t.Run("missing language is rejected", func(t *testing.T) {
		a := &model.Artifact{ID: 1, Kind: types.KindDataset}
		gt.Error(t, a.Validate())
	})

	t.Run("non-positive ID is rejected", func(t *testing.T) {
		a := &model.Artifact{ID: 0, Kind: types.KindDataset, Lang: "english"}
		gt.Error(t, a.Validate())
	})
}

func TestNormalizeTags(t *testing.T) {
	a := &model.Artifact{ID: 1, Kind: types.KindDataset, Lang: "english",
		Tags: []string{"water", "city", "water", "city", "air"}}
	a.NormalizeTags()
	gt.Value(t, a.Tags).Equal([]string{"water", "city", "air"})
}

func TestHasSameTags(t *testing.T) {
	a := &model.Artifact{Tags: []string{"water", "city"}}

	gt.Bool(t, a.HasSameTags([]string{"city", "water"})).True()
	gt.Bool(t, a.HasSameTags([]string{"water", "city", "water"})).True()
	gt.Bool(t, a.HasSameTags([]string{"water"})).False()
	gt.Bool(t, a.HasSameTags([]string{"water", "air"})).False()
}
