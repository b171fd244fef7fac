package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/opencity-lab/musette/pkg/domain/model"
	"github.com/opencity-lab/musette/pkg/domain/types"
	"github.com/opencity-lab/musette/pkg/utils/errutil"
)

// artifactBody is the JSON shape of an artifact on the wire. Scope and
// minimum age only carry meaning for applications.
type artifactBody struct {
	ID     types.ArtifactID `json:"id"`
	Lang   string           `json:"lang"`
	Tags   []string         `json:"tags"`
	Scope  string           `json:"scope,omitempty"`
	MinAge int              `json:"min_age,omitempty"`
}

func toArtifactBody(a *model.Artifact) artifactBody {
	return artifactBody{
		ID:     a.ID,
		Lang:   a.Lang,
		Tags:   a.Tags,
		Scope:  a.Scope,
		MinAge: a.MinAge,
	}
}

// pathKind resolves the kind segment of a CRUD route. The route pattern
// already restricts it to the concrete kinds.
func pathKind(r *http.Request) types.ArtifactKind {
	return types.ArtifactKind(chi.URLParam(r, "kind"))
}

func pathArtifactID(r *http.Request) (types.ArtifactID, error) {
	return types.ParseArtifactID(chi.URLParam(r, "id"))
}

func decodeArtifact(r *http.Request, kind types.ArtifactKind) (*model.Artifact, error) {
	var body artifactBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, goerr.Wrap(err, "failed to decode artifact body", goerr.T(types.ErrTagBadRequest))
	}
	return &model.Artifact{
		ID:     body.ID,
		Kind:   kind,
		Lang:   body.Lang,
		Tags:   body.Tags,
		Scope:  body.Scope,
		MinAge: body.MinAge,
	}, nil
}

func (s *Server) listArtifacts(w http.ResponseWriter, r *http.Request) {
	artifacts, err := s.uc.Artifact.List(r.Context(), pathKind(r))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	body := make([]artifactBody, len(artifacts))
	for i, a := range artifacts {
		body[i] = toArtifactBody(a)
	}
	respondJSON(w, r, http.StatusOK, body)
}

func (s *Server) createArtifact(w http.ResponseWriter, r *http.Request) {
	artifact, err := decodeArtifact(r, pathKind(r))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	created, err := s.uc.Artifact.Create(r.Context(), artifact)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, toArtifactBody(created))
}

func (s *Server) getArtifact(w http.ResponseWriter, r *http.Request) {
	id, err := pathArtifactID(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	artifact, err := s.uc.Artifact.Get(r.Context(), id, pathKind(r))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toArtifactBody(artifact))
}

func (s *Server) updateArtifact(w http.ResponseWriter, r *http.Request) {
	id, err := pathArtifactID(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	artifact, err := decodeArtifact(r, pathKind(r))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	artifact.ID = id

	updated, err := s.uc.Artifact.Update(r.Context(), artifact)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toArtifactBody(updated))
}

func (s *Server) deleteArtifact(w http.ResponseWriter, r *http.Request) {
	id, err := pathArtifactID(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	if err := s.uc.Artifact.Delete(r.Context(), id, pathKind(r)); err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
