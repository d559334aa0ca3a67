package misc

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

func ReadFile(fileName string) (error, []byte) {
	if fileName == "" {
		return errors.New("no filename supplied"), []byte{}
	}
	// open file for reading
	file, err := os.Open(fileName)
	if err != nil {
		return errors.Wrapf(err, "unable to open %s", fileName), []byte{}
	}
	// read contents from open file
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		file.Close()
		return errors.Wrapf(err, "unable to read %s", fileName), []byte{}
	}
	// close file
	err = file.Close()
	if err != nil {
		return errors.Wrapf(err, "unable to close %s", fileName), []byte{}
	}

	return nil, fileBytes
}

func WriteFile(fileName string, contents []byte) (int, error) {
	if fileName == "" {
		return 0, errors.New("no filename supplied")
	}
	// create/truncate file for writing
	file, err := os.Create(fileName)
	if err != nil {
		return 0, errors.Wrapf(err, "unable to create file %s", fileName)
	}
	// write contents to open file
	bytesWritten, err := file.Write(contents)
	if err != nil {
		file.Close()
		return bytesWritten, errors.Wrapf(err, "unable to write file %s", fileName)
	}
	// close file
	err = file.Close()
	if err != nil {
		return bytesWritten, errors.Wrapf(err, "unable to close file %s", fileName)
	}

	return bytesWritten, nil
}

// CreateFile opens fileName for writing through fill, closing it afterwards.
func CreateFile(fileName string, fill func(io.Writer) error) error {
	file, err := os.Create(fileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", fileName)
	}
	if err := fill(file); err != nil {
		file.Close()
		return errors.Wrapf(err, "unable to write file %s", fileName)
	}
	return errors.Wrapf(file.Close(), "unable to close file %s", fileName)
}
