package decoder

import (
	"github.com/go-i2p/logger"
)

// log is the package-level logger for decoder events.
var log = logger.GetGoI2PLogger()
