package hydrate

import (
	"os"
	"path/filepath"
)

// baseCSS is the compiled stylesheet shipped with every build. Design tokens
// come in through the CSS custom properties each document declares on :root,
// so the file content itself is constant and byte-stable across builds.
const baseCSS = `*,*::before,*::after{box-sizing:border-box;}
body{margin:0;font-family:var(--font-body);color:var(--color-text);background:var(--color-background);line-height:1.6;}
h1,h2,h3,h4,h5,h6{font-family:var(--font-heading);line-height:1.2;}
a{color:var(--color-primary);}
main{max-width:72rem;margin:0 auto;padding:1.5rem;}
nav ul{display:flex;gap:1rem;list-style:none;padding:0;}
.hero{text-align:center;padding:4rem 1rem;}
.hero .badge{display:inline-block;padding:0.2rem 0.6rem;border-radius:9999px;background:var(--color-primary);color:var(--color-background);font-size:0.8rem;}
.hero .description{opacity:0.8;}
.markdown img{max-width:100%;}
`

// WriteStylesheet emits assets/output.css under outputDir.
func WriteStylesheet(outputDir string) error {
	dst := filepath.Join(outputDir, "assets", "output.css")
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	return os.WriteFile(dst, []byte(baseCSS), 0644)
}
