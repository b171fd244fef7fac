package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/opencity-lab/musette/pkg/domain/types"
	"github.com/opencity-lab/musette/pkg/utils/errutil"
)

type idListResponse struct {
	IDs []types.ArtifactID `json:"ids"`
}

func (s *Server) recommend(w http.ResponseWriter, r *http.Request) {
	id, err := pathArtifactID(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	kind, err := types.ParseArtifactKind(chi.URLParam(r, "kind"))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	ids, err := s.uc.Recommend.Recommend(r.Context(), id, kind)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	respondJSON(w, r, http.StatusOK, idListResponse{IDs: ids})
}

func (s *Server) recommendApps(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	// Malformed query fields are collected and reported together, not one
	// at a time.
	var malformed []string
	coordinate := func(name string) float64 {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			return types.UnsetCoordinate
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			malformed = append(malformed, name+" must be an integer")
			return types.UnsetCoordinate
		}
		return v
	}

	lat := coordinate("lat")
	lon := coordinate("lon")

	radius, err := strconv.ParseFloat(r.URL.Query().Get("radius"), 64)
	if err != nil {
		malformed = append(malformed, "radius must be an integer")
	}

	if len(malformed) > 0 {
		errutil.HandleHTTP(r.Context(), w, goerr.New(strings.Join(malformed, ", "),
			goerr.V("user_id", userID), goerr.T(types.ErrTagBadRequest)))
		return
	}

	ids, err := s.uc.Recommend.RecommendApps(r.Context(), userID, lat, lon, radius)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}
	respondJSON(w, r, http.StatusOK, idListResponse{IDs: ids})
}
