package commands

import (
	"fmt"

	"github.com/samber/oops"

	decoder "github.com/go-fritz/go-decoder"
	"github.com/go-fritz/go-decoder/envstore"
)

// RunDeviceKey prints the derived 256-bit document cipher key as 64 hex
// characters.
func RunDeviceKey(props []string, envFile string) error {
	key, err := deriveKey(props, envFile)
	if err != nil {
		return err
	}
	fmt.Println(key)
	return nil
}

// RunCertPassword prints the GUI certificate private-key password. With
// no argument the MAC address is read from the local environment store.
func RunCertPassword(mac, envFile string) error {
	if mac == "" {
		store, err := loadStore(envFile)
		if err != nil {
			return err
		}
		var ok bool
		if mac, ok = store.Get(envstore.NameMAC); !ok {
			return oops.
				Code("NO_LOCAL_DEVICE").
				In("commands").
				With("path", store.Path()).
				Errorf("environment store at %s has no %s entry", store.Path(), envstore.NameMAC)
		}
	}

	password, err := decoder.DeriveCertificatePassword(mac)
	if err != nil {
		return err
	}
	fmt.Println(password)
	return nil
}
