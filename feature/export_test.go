package feature

import "os"

// appendRaw writes raw bytes to the end of a store file, for tests that
// need to corrupt it.
func appendRaw(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(line)
	return err
}
