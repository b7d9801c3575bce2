package fsops

// FakeDeleter records deletion calls instead of executing them.
// FailOn injects an error for a specific path to exercise partial
// failure handling.
type FakeDeleter struct {
	Removed []string
	FailOn  map[string]error
}

func (f *FakeDeleter) Remove(path string) error {
	return f.record("rm:", path)
}

func (f *FakeDeleter) RemoveAll(path string) error {
	return f.record("rmall:", path)
}

func (f *FakeDeleter) record(op, path string) error {
	if err, ok := f.FailOn[path]; ok {
		return err
	}
	f.Removed = append(f.Removed, op+path)
	return nil
}

// Calls returns how many deletions were attempted successfully.
func (f *FakeDeleter) Calls() int { return len(f.Removed) }
