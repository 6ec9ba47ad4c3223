package handlers

import "mime/multipart"

// formValue reads a plain multipart field, distinguishing "absent" from
// "present but empty" — partial updates must only touch fields the client
// actually sent.
func formValue(form *multipart.Form, key string) (string, bool) {
	vals, ok := form.Value[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// formFile returns the first file in a named upload slot, or nil when the
// slot is absent.
func formFile(form *multipart.Form, key string) *multipart.FileHeader {
	files := form.File[key]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}
