package run

import (
	"bytes"
	"fmt"
	"io"

	"github.com/StikStore/stikstore.github.io/common/config"
)

// GenConfigDocs writes a markdown description of every registered option.
func GenConfigDocs(w io.Writer) {
	var out bytes.Buffer

	for _, k := range config.Singleton.SortedKeys() {
		v := config.Singleton.Options[k]

		out.WriteString("**" + v.Description + "**")

		typeStr := ""
		def := ""
		switch t := v.DefaultValue.(type) {
		case string:
			typeStr = "string"
			def = t
		case bool:
			typeStr = "true/false"
			def = "true"
			if !t {
				def = "false"
			}
		case int, uint, float32, float64, int8, int16, int32, int64, uint8, uint16, uint32, uint64:
			typeStr = "number"
			def = fmt.Sprint(t)
		case nil:
			typeStr = "string"
		}

		if v.Secret {
			def = ""
		}

		if typeStr != "" {
			out.WriteString(" (" + typeStr)
			if v.Required {
				out.WriteString(", required")
			} else if def != "" {
				out.WriteString(", default: " + def)
			}
			out.WriteString(")")
		}
		out.WriteString("\n")

		out.WriteString(v.EnvName() + "\n\n")
	}

	w.Write(out.Bytes())
}
