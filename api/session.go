package api

import (
	"net/http"
	"time"

	"github.com/localsub/localsub/common/humanize"
	"github.com/localsub/localsub/option"

	"github.com/go-chi/render"
)

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.session.Profile())
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var profile option.Profile
	err := render.DecodeJSON(r.Body, &profile)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrBadRequest)
		return
	}
	s.session.SetProfile(profile)
	render.NoContent(w, r)
}

func (s *Server) getPresets(w http.ResponseWriter, r *http.Request) {
	presets := s.session.Presets()
	if presets == nil {
		presets = []option.PresetConfig{}
	}
	render.JSON(w, r, presets)
}

type statusSchema struct {
	Converting bool         `json:"converting"`
	Previewing bool         `json:"previewing"`
	LastError  string       `json:"last_error,omitempty"`
	Quota      *quotaSchema `json:"quota,omitempty"`
}

type quotaSchema struct {
	Used         string `json:"used"`
	Total        string `json:"total"`
	UsagePercent *int   `json:"usage_percent,omitempty"`
	Expire       string `json:"expire"`
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	status := statusSchema{
		Converting: s.session.Converting(),
		Previewing: s.session.Previewing(),
		LastError:  s.session.LastError(),
	}
	info := s.session.PreviewInfo()
	if result := s.session.Result(); result != nil && result.SubscriptionInfo != nil {
		info = result.SubscriptionInfo
	}
	if info.HasQuota() {
		quota := &quotaSchema{
			Used:   humanize.Bytes(info.UsedBytes()),
			Total:  humanize.OptionalBytes(info.Total),
			Expire: humanize.Expire(info.Expire, time.Now()),
		}
		if percent, ok := info.UsagePercent(); ok {
			quota.UsagePercent = &percent
		}
		status.Quota = quota
	}
	render.JSON(w, r, status)
}

func (s *Server) getResult(w http.ResponseWriter, r *http.Request) {
	result := s.session.Result()
	if result == nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, newError("no conversion result"))
		return
	}
	render.JSON(w, r, result)
}

func (s *Server) getNodes(w http.ResponseWriter, r *http.Request) {
	nodes := s.session.PreviewNodes()
	if nodes == nil {
		nodes = []option.NodeInfo{}
	}
	render.JSON(w, r, option.ParseResult{
		Nodes:            nodes,
		SubscriptionInfo: s.session.PreviewInfo(),
	})
}

func (s *Server) postConvert(w http.ResponseWriter, r *http.Request) {
	result, err := s.session.Convert(r.Context())
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, newError(err.Error()))
		return
	}
	render.JSON(w, r, result)
}

func (s *Server) postPreview(w http.ResponseWriter, r *http.Request) {
	nodes, err := s.session.Preview(r.Context())
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, newError(err.Error()))
		return
	}
	if nodes == nil {
		nodes = []option.NodeInfo{}
	}
	render.JSON(w, r, option.ParseResult{
		Nodes:            nodes,
		SubscriptionInfo: s.session.PreviewInfo(),
	})
}

func (s *Server) postValidate(w http.ResponseWriter, r *http.Request) {
	var request option.RegexRequest
	err := render.DecodeJSON(r.Body, &request)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrBadRequest)
		return
	}
	render.JSON(w, r, render.M{"valid": s.session.ValidatePattern(r.Context(), request.Pattern)})
}

func (s *Server) postClear(w http.ResponseWriter, r *http.Request) {
	s.session.ClearResult()
	render.NoContent(w, r)
}

func (s *Server) postReset(w http.ResponseWriter, r *http.Request) {
	s.session.Reset()
	render.NoContent(w, r)
}
