package memstore

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"tp-forum-engine/models"
)

// Fixture is the initial content of a memory store. Posts and votes are
// created through the engine.
type Fixture struct {
	Users   []string        `mapstructure:"users"`
	Forums  []string        `mapstructure:"forums"`
	Threads []FixtureThread `mapstructure:"threads"`
}

type FixtureThread struct {
	Slug    string `mapstructure:"slug"`
	Title   string `mapstructure:"title"`
	Forum   string `mapstructure:"forum"`
	Author  string `mapstructure:"author"`
	Message string `mapstructure:"message"`
}

// LoadFixture reads a fixture in any format viper understands, picked by
// the file extension.
func LoadFixture(path string) (*Fixture, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "read store fixture")
	}

	var f Fixture
	if err := v.Unmarshal(&f); err != nil {
		return nil, errors.Wrap(err, "decode store fixture")
	}
	return &f, nil
}

// Seed adds the users, forums and threads of f in that order. Threads get
// ids in fixture order starting after the ones already stored.
func (s *Store) Seed(f *Fixture) error {
	for _, nickname := range f.Users {
		s.AddUser(nickname)
	}
	for _, slug := range f.Forums {
		s.AddForum(slug)
	}
	for _, th := range f.Threads {
		thread := models.Thread{
			Title:   th.Title,
			Forum:   th.Forum,
			Author:  th.Author,
			Message: th.Message,
		}
		if th.Slug != "" {
			thread.Slug = models.NewNullString(th.Slug)
		}
		if _, err := s.AddThread(thread); err != nil {
			return errors.Wrapf(err, "seed thread %q", th.Title)
		}
	}
	return nil
}
