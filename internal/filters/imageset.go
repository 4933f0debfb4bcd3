package filters

import (
	"errors"
	"fmt"
)

// ImageSet edits the product's image-to-model associations against the
// current model list. Stored positional references are resolved to option
// ids on construction and back to positions on output, so edits to the model
// list in between cannot re-point a link at the wrong option.
type ImageSet struct {
	models *SizeList
	links  []imageLink

	// staging state for the single-image add flow
	pendingURL string
	pendingIDs []string
}

type imageLink struct {
	url      string
	modelIDs []string
}

var errNoModels = errors.New("model options must be added before images")

// NewImageSet validates initial links against the model list: every link
// needs a non-empty url and at least one model reference in range.
func NewImageSet(models *SizeList, initial []ImageLink) (*ImageSet, error) {
	s := &ImageSet{models: models}
	for i, link := range initial {
		if link.URL == "" {
			return nil, fmt.Errorf("images[%d]: url is required", i)
		}
		if len(link.ModelIDs) == 0 {
			return nil, fmt.Errorf("images[%d]: at least one model is required", i)
		}
		if models.Len() == 0 {
			return nil, errNoModels
		}
		var ids []string
		for _, idx := range link.ModelIDs {
			id, ok := models.idAt(idx)
			if !ok {
				return nil, fmt.Errorf("images[%d]: model %d does not exist", i, idx)
			}
			if !contains(ids, id) {
				ids = append(ids, id)
			}
		}
		s.links = append(s.links, imageLink{url: link.URL, modelIDs: ids})
	}
	return s, nil
}

// Stage sets the pending image URL for the next Commit.
func (s *ImageSet) Stage(url string) { s.pendingURL = url }

// Toggle adds or removes model option i from the pending selection. Refused
// when the model list is empty (the form shows a blocking notice instead).
func (s *ImageSet) Toggle(i int) bool {
	id, ok := s.models.idAt(i)
	if !ok {
		return false
	}
	for k, v := range s.pendingIDs {
		if v == id {
			s.pendingIDs = append(s.pendingIDs[:k], s.pendingIDs[k+1:]...)
			return true
		}
	}
	s.pendingIDs = append(s.pendingIDs, id)
	return true
}

// Commit appends the staged link and clears the staging state. No-op unless
// a URL is staged and at least one model is selected.
func (s *ImageSet) Commit() bool {
	if s.pendingURL == "" || len(s.pendingIDs) == 0 {
		return false
	}
	s.links = append(s.links, imageLink{url: s.pendingURL, modelIDs: s.pendingIDs})
	s.pendingURL = ""
	s.pendingIDs = nil
	return true
}

// Remove deletes the link at i.
func (s *ImageSet) Remove(i int) bool {
	if i < 0 || i >= len(s.links) {
		return false
	}
	s.links = append(s.links[:i], s.links[i+1:]...)
	return true
}

// Links resolves the stored links back to positional references against the
// model list as it stands now. References to options that no longer exist
// are dropped; a link left with no models is dropped entirely.
func (s *ImageSet) Links() []ImageLink {
	var out []ImageLink
	for _, link := range s.links {
		var idxs []int
		for _, id := range link.modelIDs {
			if i := s.models.indexOf(id); i >= 0 {
				idxs = append(idxs, i)
			}
		}
		if len(idxs) == 0 {
			continue
		}
		out = append(out, ImageLink{URL: link.url, ModelIDs: idxs})
	}
	return out
}

// Labels resolves the display labels of link i's models for a locale.
func (s *ImageSet) Labels(i int, loc Locale) []string {
	if i < 0 || i >= len(s.links) {
		return nil
	}
	var out []string
	for _, id := range s.links[i].modelIDs {
		if idx := s.models.indexOf(id); idx >= 0 {
			out = append(out, s.models.Label(idx, loc))
		}
	}
	return out
}

func contains(xs []string, v string) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
