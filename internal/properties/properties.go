package properties

import (
	"os"
	"path/filepath"
)

// SceneSuffix is the filename convention produced by the clipping
// pipeline; the part before it is the scene's period label.
const SceneSuffix = "_clipped_NGP.tif"

const (
	ClippedDirName = "Clipped_Images"
	ResultsDirName = "Simple_Analysis_Results"
	SummaryFile    = "Analysis_Summary.csv"
)

func RootPath() string {
	if root := os.Getenv("ROOT_PATH"); root != "" {
		return root
	}
	return "."
}

func ClippedDir() string {
	return filepath.Join(RootPath(), ClippedDirName)
}

func ResultsDir() string {
	return filepath.Join(RootPath(), ResultsDirName)
}

func DiscordErrorNotificationUrl() string {
	return os.Getenv("DISCORD_ERROR_NOTIFICATION_URL")
}

func DiscordSuccessNotificationUrl() string {
	return os.Getenv("DISCORD_SUCCESS_NOTIFICATION_URL")
}
