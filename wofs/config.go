package wofs

import (
	"os"

	"github.com/mit-pdos/go-wofs/common"
	"github.com/mit-pdos/go-wofs/super"
)

func DefaultConfig() Config {
	return Config{
		ImageSize:     common.ImageSize,
		MaxFiles:      common.MaxFiles,
		MaxFileBlocks: common.MaxFileBlocks,
		LogWriter:     os.Stderr,
	}
}

func (cfg Config) layout() (super.Layout, error) {
	return super.MkLayout(cfg.ImageSize, cfg.MaxFiles, cfg.MaxFileBlocks)
}
