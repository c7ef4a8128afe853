package analysis

import (
	"path/filepath"

	"github.com/joseph-ayodele/claims-triage/constants"
	"github.com/joseph-ayodele/claims-triage/internal/common"
)

// Input is one uploaded file.
type Input struct {
	Name     string
	MIMEType string
	Data     []byte
}

// InputFromFile builds an input whose MIME type is derived from the file name.
func InputFromFile(path string, data []byte) Input {
	return Input{Name: filepath.Base(path), MIMEType: constants.MIMEFromPath(path), Data: data}
}

func (in Input) Validate() error {
	v := common.NewValidator().
		Field("name", in.Name, common.Required).
		Field("data", in.Data, common.Required).
		Field("mime_type", in.MIMEType, common.Required)
	return common.ValidateAndReturnError(v)
}
