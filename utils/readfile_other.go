//go:build !unix

package utils

import "os"

func ReadFile(name string) (data []byte, release func(), err error) {
	data, err = os.ReadFile(name)
	if err != nil {
		return nil, nil, err
	}
	return data, func() {}, nil
}
