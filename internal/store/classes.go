package store

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/schooldesk/schooldesk/internal/model"
)

const keyClasses = "classes"

// Classes returns all classes.
func (s *Store) Classes() []model.Class {
	return Get(s, keyClasses, []model.Class{})
}

// ReplaceClasses overwrites the whole collection.
func (s *Store) ReplaceClasses(list []model.Class) error {
	return Set(s, keyClasses, list)
}

// AddClass creates a class with a C<n> id from the persisted counter.
// Class names are unique case-insensitively.
func (s *Store) AddClass(name, sectionHead string) (model.Class, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	classes, err := get(s, keyClasses, []model.Class{})
	if err != nil {
		return model.Class{}, err
	}
	for _, c := range classes {
		if strings.EqualFold(c.Name, name) {
			return model.Class{}, fmt.Errorf("class %q: %w", name, ErrDuplicateName)
		}
	}
	n, err := s.nextSeq("classes")
	if err != nil {
		return model.Class{}, fmt.Errorf("class id: %w", err)
	}
	c := model.Class{
		ID:          "C" + strconv.Itoa(n),
		Name:        name,
		Sections:    []string{},
		SectionHead: sectionHead,
	}
	if err := set(s, keyClasses, append(classes, c)); err != nil {
		return model.Class{}, err
	}
	slog.Info("added class", "id", c.ID, "name", c.Name)
	return c, nil
}

// GetClass returns the class with the given id.
func (s *Store) GetClass(id string) (model.Class, error) {
	for _, c := range s.Classes() {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Class{}, fmt.Errorf("class %s: %w", id, ErrNotFound)
}

// ClassByName returns the class with the given name (exact match).
func (s *Store) ClassByName(name string) (model.Class, error) {
	for _, c := range s.Classes() {
		if c.Name == name {
			return c, nil
		}
	}
	return model.Class{}, fmt.Errorf("class %q: %w", name, ErrNotFound)
}

// AddSection appends a section name to a class. Section names are unique
// within one class (exact match); the same name may appear in other classes.
func (s *Store) AddSection(classID, section string) (model.Class, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	classes, err := get(s, keyClasses, []model.Class{})
	if err != nil {
		return model.Class{}, err
	}
	for i, c := range classes {
		if c.ID != classID {
			continue
		}
		for _, have := range c.Sections {
			if have == section {
				return model.Class{}, fmt.Errorf("section %q in %s: %w", section, c.Name, ErrDuplicateName)
			}
		}
		classes[i].Sections = append(classes[i].Sections, section)
		if err := set(s, keyClasses, classes); err != nil {
			return model.Class{}, err
		}
		return classes[i], nil
	}
	return model.Class{}, fmt.Errorf("class %s: %w", classID, ErrNotFound)
}

// UpdateClassHead sets the section head of a class.
func (s *Store) UpdateClassHead(classID, sectionHead string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	classes, err := get(s, keyClasses, []model.Class{})
	if err != nil {
		return err
	}
	for i, c := range classes {
		if c.ID == classID {
			classes[i].SectionHead = sectionHead
			return set(s, keyClasses, classes)
		}
	}
	return fmt.Errorf("class %s: %w", classID, ErrNotFound)
}

// DeleteClass removes a class and its section list. Students referencing
// the class by name are not touched; the relation is by name only.
func (s *Store) DeleteClass(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	classes, err := get(s, keyClasses, []model.Class{})
	if err != nil {
		return err
	}
	next := classes[:0:0]
	for _, c := range classes {
		if c.ID != id {
			next = append(next, c)
		}
	}
	if len(next) == len(classes) {
		return fmt.Errorf("class %s: %w", id, ErrNotFound)
	}
	return set(s, keyClasses, next)
}
