package analyzer

// Packages known to ship their own type information; no stub package is
// suggested for these.
var typedPackages = map[string]bool{
	"sqlalchemy": true,
	"pydantic":   true,
	"fastapi":    true,
	"starlette":  true,
	"pytest":     true,
	"click":      true,
	"inject":     true,
	"httpx":      true,
	"jinja2":     true,
	"aiohttp":    true,
	"asyncpg":    true,
	"typer":      true,
	"rich":       true,
	"uvicorn":    true,
	"websockets": true,
}

// Standard-library modules commonly imported; never stub candidates.
var builtinModules = map[string]bool{
	"os":          true,
	"sys":         true,
	"pathlib":     true,
	"typing":      true,
	"collections": true,
	"datetime":    true,
	"json":        true,
	"re":          true,
	"time":        true,
	"random":      true,
	"math":        true,
	"itertools":   true,
	"functools":   true,
}
