package storage

import "context"

// Store is a destination for downloaded images. Existence of a name is the
// only record that an image was already fetched.
type Store interface {
	Exists(ctx context.Context, name string) (bool, error)
	Write(ctx context.Context, name string, data []byte) error
	Location(name string) string
}

type teeStore struct {
	primary Store
	mirrors []Store
}

// Tee reports a name as present only when primary and every mirror hold it.
// Write fills in whichever stores lack the name, primary first, stopping at
// the first failure, so a mirror that missed an upload is caught up next run.
func Tee(primary Store, mirrors ...Store) Store {
	if len(mirrors) == 0 {
		return primary
	}
	return &teeStore{primary: primary, mirrors: mirrors}
}

func (t *teeStore) stores() []Store {
	return append([]Store{t.primary}, t.mirrors...)
}

func (t *teeStore) Exists(ctx context.Context, name string) (bool, error) {
	for _, s := range t.stores() {
		exists, err := s.Exists(ctx, name)
		if err != nil || !exists {
			return false, err
		}
	}
	return true, nil
}

func (t *teeStore) Write(ctx context.Context, name string, data []byte) error {
	for _, s := range t.stores() {
		exists, err := s.Exists(ctx, name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := s.Write(ctx, name, data); err != nil {
			return err
		}
	}
	return nil
}

func (t *teeStore) Location(name string) string {
	return t.primary.Location(name)
}
