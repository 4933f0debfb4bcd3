package services

import (
	"database/sql"
	"errors"
	"strings"

	"atelier/internal/domain"
	"atelier/internal/repos"
)

type WorkService struct {
	Works *repos.WorkRepo
	Cats  *repos.CategoryRepo
}

func NewWorkService(works *repos.WorkRepo, cats *repos.CategoryRepo) *WorkService {
	return &WorkService{Works: works, Cats: cats}
}

type WorkInput struct {
	CategoryID     *int64  `json:"categoryId"`
	TitleEn        *string `json:"titleEn"`
	TitleRu        *string `json:"titleRu"`
	TitleArm       *string `json:"titleArm"`
	DescriptionEn  *string `json:"descriptionEn"`
	DescriptionRu  *string `json:"descriptionRu"`
	DescriptionArm *string `json:"descriptionArm"`
	Photo          *string `json:"photo"`
}

func (s *WorkService) List() ([]domain.Work, error) { return s.Works.List() }

func (s *WorkService) Get(id int64) (domain.Work, error) {
	w, err := s.Works.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return w, ErrNotFound
	}
	return w, err
}

func (s *WorkService) Create(in WorkInput) (domain.Work, error) {
	var w domain.Work
	if in.CategoryID == nil || *in.CategoryID <= 0 {
		return w, invalidf("categoryId is required")
	}
	if _, err := s.Cats.Get(*in.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return w, invalidf("category %d does not exist", *in.CategoryID)
		}
		return w, err
	}
	titles, err := requiredTriple("title", in.TitleEn, in.TitleRu, in.TitleArm)
	if err != nil {
		return w, err
	}
	if in.Photo == nil || strings.TrimSpace(*in.Photo) == "" {
		return w, invalidf("photo is required")
	}

	w = domain.Work{
		CategoryID: *in.CategoryID,
		TitleEn:    titles[0],
		TitleRu:    titles[1],
		TitleArm:   titles[2],
		Photo:      strings.TrimSpace(*in.Photo),
	}
	applyOptional(&w.DescriptionEn, in.DescriptionEn)
	applyOptional(&w.DescriptionRu, in.DescriptionRu)
	applyOptional(&w.DescriptionArm, in.DescriptionArm)

	if err := s.Works.Insert(&w); err != nil {
		return w, err
	}
	return s.Works.Get(w.ID)
}

func (s *WorkService) Update(id int64, in WorkInput) (domain.Work, error) {
	w, err := s.Get(id)
	if err != nil {
		return w, err
	}
	set := map[string]any{}
	if in.CategoryID != nil {
		if _, err := s.Cats.Get(*in.CategoryID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return w, invalidf("category %d does not exist", *in.CategoryID)
			}
			return w, err
		}
		set["category_id"] = *in.CategoryID
	}
	if err := setName(set, "title_en", in.TitleEn); err != nil {
		return w, err
	}
	if err := setName(set, "title_ru", in.TitleRu); err != nil {
		return w, err
	}
	if err := setName(set, "title_arm", in.TitleArm); err != nil {
		return w, err
	}
	if in.Photo != nil {
		photo := strings.TrimSpace(*in.Photo)
		if photo == "" {
			return w, invalidf("photo must not be empty")
		}
		set["photo"] = photo
	}
	setOptional(set, "description_en", in.DescriptionEn)
	setOptional(set, "description_ru", in.DescriptionRu)
	setOptional(set, "description_arm", in.DescriptionArm)

	if err := s.Works.Update(id, set); err != nil {
		return w, err
	}
	return s.Works.Get(id)
}

func (s *WorkService) Delete(id int64) error {
	ok, err := s.Works.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
