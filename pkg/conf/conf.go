package conf

import "time"

// Version is set at build time
var Version = "development"

const (
	// Timeout acts as the general connection Timeout default value
	Timeout = 10 * time.Second

	// DefaultSSHPort is used when the target host carries no port
	DefaultSSHPort = "22"

	// TransferBufferSize is the buffer size for SFTP file transfers (32KB)
	TransferBufferSize = 32 * 1024

	// File size constants for display formatting

	BytesPerKB = 1024
	BytesPerMB = 1024 * 1024

	// PercentageMultiplier for converting to percentage
	PercentageMultiplier = 100.0
)
