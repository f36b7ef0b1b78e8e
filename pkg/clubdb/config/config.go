package config

import (
	"sync"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/config"
)

var (
	txRetry     int
	txRetryOnce sync.Once
)

// GetTxRetry returns how many times a failed transaction is attempted. It reads
// CLUB_TX_RETRY once and never goes below 3.
func GetTxRetry() int {
	txRetryOnce.Do(func() {
		txRetry = config.GetIntKeyWithDefault(config.KeyTxRetry, 3)
		if txRetry < 3 {
			txRetry = 3
		}
	})

	return txRetry
}
