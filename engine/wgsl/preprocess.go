package wgsl

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/nullrefgames/wgslhost/engine/resolver"
	"github.com/nullrefgames/wgslhost/internal/hosterr"
	"github.com/nullrefgames/wgslhost/internal/hostlog"
)

var log = hostlog.With("wgsl")

const (
	defaultTitle  = "untitled"
	defaultWidth  = 800
	defaultHeight = 600
)

var (
	setTitleStrictRe = regexp.MustCompile(`@set_title\(\s*` + quoted + `\s*\)`)
	setTitleLooseRe  = regexp.MustCompile(`@set_title\([^)]*\)`)
	setSizeStrictRe  = regexp.MustCompile(`@set_size\(\s*(-?\d+)\s*,\s*(-?\d+)\s*\)`)
	setSizeLooseRe   = regexp.MustCompile(`@set_size\([^)]*\)`)

	textureFormsRe = regexp.MustCompile(`@texture(_index)?\(\s*` + quoted + `\s*\)`)
	videoRe        = regexp.MustCompile(`@video\(\s*` + quoted + `\s*\)`)
	cameraRe       = regexp.MustCompile(`@camera\(\s*(\d+)\s*\)`)
	soundFormsRe   = regexp.MustCompile(`@sound\(\s*` + quoted + `\s*\)(?:\.(play|stop)\(\))?`)
	modelRefRe     = regexp.MustCompile(`@model\(\s*` + quoted + `\s*\)\.(positions|normals)`)
	oscRe          = regexp.MustCompile(`@osc\(\s*` + quoted + `\s*\)`)
	strRe          = regexp.MustCompile(`@str\(\s*` + quoted + `\s*\)`)
	engineRe       = regexp.MustCompile(`@engine\.(\w+)`)
)

// Preprocess runs the full §4.2 processing contract against the game
// rooted at entryPath: it inlines @import transitively, discovers every
// asset directive in first-occurrence order, computes the GameState
// layout, and rewrites the body into plain WGSL against a generated
// header. The returned Manifest's GeneratedWGSL is ready to hand to the
// Binding Planner and the renderer's shader module constructor.
func Preprocess(r resolver.Resolver, entryPath string) (*Manifest, error) {
	source, err := resolveImports(r, entryPath, map[string]bool{})
	if err != nil {
		return nil, err
	}

	m := &Manifest{}

	m.Title, source = extractTitle(source)
	m.Width, m.Height, source = extractSize(source)

	gameStateSize, gameStateAlignment, _, gameStateRaw, err := ComputeGameStateLayout(source)
	if err != nil {
		return nil, hosterr.New(hosterr.PreprocessSyntax, err)
	}
	m.GameStateSize = gameStateSize
	m.GameStateAlignment = gameStateAlignment
	hasGameState := gameStateRaw != ""
	if hasGameState {
		if raw := gameStateRe.FindString(source); raw != "" {
			source = strings.Replace(source, raw, "", 1)
		}
	}

	source = rewriteTextures(m, source)
	source = rewriteVideos(m, source)
	source = rewriteCameras(m, source)
	source = rewriteSounds(m, source)
	source = rewriteModels(m, source)
	source = rewriteOSC(m, source)
	source = rewriteStrLiterals(source)

	source, err = rewriteEngineFields(source)
	if err != nil {
		return nil, hosterr.New(hosterr.PreprocessSyntax, err)
	}

	m.GeneratedWGSL = buildHeader(m, gameStateRaw, hasGameState) + source
	return m, nil
}

// resolveImports reads path and inlines every @import it contains,
// depth-first, eliding any path already visited in this compilation.
func resolveImports(r resolver.Resolver, path string, visited map[string]bool) (string, error) {
	if visited[path] {
		return "// @import(\"" + path + "\") already included, elided\n", nil
	}
	visited[path] = true

	text, err := r.ReadText(path)
	if err != nil {
		return "", err
	}
	return inlineImports(r, text, visited)
}

func inlineImports(r resolver.Resolver, text string, visited map[string]bool) (string, error) {
	var firstErr error
	result := importRe.ReplaceAllStringFunc(text, func(match string) string {
		if firstErr != nil {
			return match
		}
		sub := importRe.FindStringSubmatch(match)
		importPath := unescapeDialectString(sub[1])
		inlined, err := resolveImports(r, importPath, visited)
		if err != nil {
			firstErr = err
			return match
		}
		return inlined
	})
	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

func extractTitle(source string) (string, string) {
	if m := setTitleStrictRe.FindStringSubmatch(source); m != nil {
		source = setTitleStrictRe.ReplaceAllString(source, "")
		return unescapeDialectString(m[1]), source
	}
	if setTitleLooseRe.MatchString(source) {
		log.Warn().Msg("malformed @set_title, using default title")
		source = setTitleLooseRe.ReplaceAllString(source, "")
	}
	return defaultTitle, source
}

func extractSize(source string) (uint32, uint32, string) {
	if m := setSizeStrictRe.FindStringSubmatch(source); m != nil {
		source = setSizeStrictRe.ReplaceAllString(source, "")
		w, errW := strconv.Atoi(m[1])
		h, errH := strconv.Atoi(m[2])
		if errW == nil && errH == nil && w > 0 && h > 0 {
			return uint32(w), uint32(h), source
		}
		log.Warn().Msg("malformed @set_size arguments, using defaults 800x600")
		return defaultWidth, defaultHeight, source
	}
	if setSizeLooseRe.MatchString(source) {
		log.Warn().Msg("malformed @set_size, using defaults 800x600")
		source = setSizeLooseRe.ReplaceAllString(source, "")
	}
	return defaultWidth, defaultHeight, source
}

// rewriteTextures handles @texture and @texture_index in a single pass, so
// texture indices follow first occurrence across both forms.
func rewriteTextures(m *Manifest, source string) string {
	return textureFormsRe.ReplaceAllStringFunc(source, func(match string) string {
		sub := textureFormsRe.FindStringSubmatch(match)
		i := assignIndex(&m.Textures, unescapeDialectString(sub[2]))
		if sub[1] == "_index" {
			return strconv.Itoa(i)
		}
		return textureVarName(i)
	})
}

func rewriteVideos(m *Manifest, source string) string {
	return videoRe.ReplaceAllStringFunc(source, func(match string) string {
		sub := videoRe.FindStringSubmatch(match)
		i := assignIndex(&m.Videos, unescapeDialectString(sub[1]))
		return videoVarName(i)
	})
}

func rewriteCameras(m *Manifest, source string) string {
	return cameraRe.ReplaceAllStringFunc(source, func(match string) string {
		sub := cameraRe.FindStringSubmatch(match)
		n, _ := strconv.Atoi(sub[1])
		i := assignIntIndex(&m.Cameras, n)
		return cameraVarName(i)
	})
}

// rewriteSounds handles the call form (".play()"/".stop()") and the bare
// legacy reference in a single pass: the pattern takes the call suffix
// whenever it is present, so a call is never read as a plain counter
// reference, and sound indices follow first occurrence across both forms.
func rewriteSounds(m *Manifest, source string) string {
	return soundFormsRe.ReplaceAllStringFunc(source, func(match string) string {
		sub := soundFormsRe.FindStringSubmatch(match)
		i := assignIndex(&m.Sounds, unescapeDialectString(sub[1]))
		target := hostBlockVarName + ".audio[" + strconv.Itoa(i) + "]"
		switch sub[2] {
		case "play":
			return target + " = " + target + " + 1u"
		case "stop":
			return "/* @sound(\"" + sub[1] + "\").stop() is a no-op */"
		}
		return target
	})
}

func rewriteModels(m *Manifest, source string) string {
	return modelRefRe.ReplaceAllStringFunc(source, func(match string) string {
		sub := modelRefRe.FindStringSubmatch(match)
		i := assignIndex(&m.Models, unescapeDialectString(sub[1]))
		if sub[2] == "positions" {
			return modelPositionsVarName(i)
		}
		return modelNormalsVarName(i)
	})
}

// maxOSCParams is the host-block's osc[64] slot count (§3); a 65th distinct
// name aliases slot 63 with a load-time warning rather than overrunning.
const maxOSCParams = 64

func rewriteOSC(m *Manifest, source string) string {
	return oscRe.ReplaceAllStringFunc(source, func(match string) string {
		sub := oscRe.FindStringSubmatch(match)
		name := unescapeDialectString(sub[1])
		i := assignOSCIndex(m, name)
		return hostBlockVarName + ".osc[" + strconv.Itoa(i) + "]"
	})
}

func assignOSCIndex(m *Manifest, name string) int {
	for i, v := range m.OSCParams {
		if v == name {
			return i
		}
	}
	if len(m.OSCParams) >= maxOSCParams {
		log.Warn().Str("param", name).Msg("OSC parameter count exceeds 64, aliasing to slot 63")
		return maxOSCParams - 1
	}
	m.OSCParams = append(m.OSCParams, name)
	return len(m.OSCParams) - 1
}

func rewriteStrLiterals(source string) string {
	return strRe.ReplaceAllStringFunc(source, func(match string) string {
		sub := strRe.FindStringSubmatch(match)
		return strLiteral(sub[1])
	})
}

func rewriteEngineFields(source string) (string, error) {
	var firstErr error
	result := engineRe.ReplaceAllStringFunc(source, func(match string) string {
		if firstErr != nil {
			return match
		}
		sub := engineRe.FindStringSubmatch(match)
		target, err := engineFieldTarget(sub[1])
		if err != nil {
			firstErr = err
			return match
		}
		return target
	})
	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

func assignIndex(list *[]string, name string) int {
	for i, v := range *list {
		if v == name {
			return i
		}
	}
	*list = append(*list, name)
	return len(*list) - 1
}

func assignIntIndex(list *[]int, n int) int {
	for i, v := range *list {
		if v == n {
			return i
		}
	}
	*list = append(*list, n)
	return len(*list) - 1
}
