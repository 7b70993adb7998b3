package devdiary

import "strings"

const redirectTemplate = `<!DOCTYPE html>
<html lang="{{LANG}}">
<head>
    <meta charset="UTF-8">
    <title>Redirecting...</title>
    <script>
        window.location.href = '{{LANG}}/index.html';
    </script>
    <meta http-equiv="refresh" content="0; url={{LANG}}/index.html">
</head>
<body>
    <p>Redirecting to <a href="{{LANG}}/index.html">{{LANG}}/index.html</a>...</p>
</body>
</html>
`

// RedirectPage returns the root index.html sending visitors to the main page
// of lang. Both the script and the meta refresh use relative paths so the
// site works from file:// and any hosting prefix.
func RedirectPage(lang string) string {
	return strings.ReplaceAll(redirectTemplate, "{{LANG}}", lang)
}
