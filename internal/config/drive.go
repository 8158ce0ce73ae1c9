package config

import (
	"os"
	"sync"
)

type DriveConfig struct {
	TokenFile  string
	RootFolder string
}

var (
	driveConfig *DriveConfig
	driveOnce   sync.Once
)

func LoadDriveConfig() *DriveConfig {
	driveOnce.Do(func() {
		tokenFile := os.Getenv("GOOGLE_TOKEN_FILE")
		if tokenFile == "" {
			tokenFile = "token.json"
		}
		root := os.Getenv("DRIVE_ROOT_FOLDER")
		if root == "" {
			root = "oer_content"
		}
		driveConfig = &DriveConfig{
			TokenFile:  tokenFile,
			RootFolder: root,
		}
	})
	return driveConfig
}
