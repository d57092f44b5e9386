package view

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// videoFileTypes is the filter offered by the open dialog.
var videoFileTypes = []FileType{
	{TypeName: "Video files", Extensions: []string{".mp4", ".avi"}},
	{TypeName: "All files", Extensions: []string{"*"}},
}

// VideosDir returns the user's videos directory, or the working directory when
// it does not exist.
func VideosDir() string {
	if dir := xdg.UserDirs.Videos; dir != "" {
		if st, err := os.Stat(dir); err == nil && st.IsDir() {
			return dir
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// askVideoFile shows the open dialog and returns the chosen path, or fallback
// when the dialog is cancelled.
func askVideoFile(fallback string) string {
	files := GetOpenFile(
		Title("Open Video File"),
		Initialdir(VideosDir()),
		Filetypes(videoFileTypes),
	)
	if len(files) == 0 || files[0] == "" {
		return fallback
	}
	return filepath.Clean(files[0])
}

func showError(title string, err error) {
	if err == nil {
		return
	}
	MessageBox(Title(title), Msg(title+" failed"), Detail(err.Error()), Icon("error"))
}
