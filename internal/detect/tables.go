// Package detect implements the three independent signal detectors:
// origin, DRM/third-party-account, and anti-cheat. Detectors are pure
// functions over the normalized metadata; all keyword tables are
// package-level immutable data loaded once at process start.
//
// Matching is deliberately unanchored substring matching. Short keys can
// match inside unrelated longer words in free-text descriptions; the
// heuristic trades false positives for recall.
package detect

// originKeywords flags a developer/publisher name when any entry appears
// in it (case-insensitive substring)
var originKeywords = []string{
	"tencent",
	"netease",
	"mihoyo",
	"hoyoverse",
	"perfect world",
	"lilith",
	"hypergryph",
	"kuro game",
	"game science",
	"giant network",
	"yostar",
	"bilibili",
	"seasun",
	"xd network",
	"papergames",
	"37games",
	"zlongame",
	"shengqu",
	"leiting",
	"netdragon",
	"changyou",
	"kingsoft",
	"archosaur",
	"hero games",
	"level infinite",
}

// knownTitles flags a game by display name (case-insensitive substring)
var knownTitles = []string{
	"genshin impact",
	"honkai",
	"zenless zone zero",
	"wuthering waves",
	"punishing: gray raven",
	"tower of fantasy",
	"naraka: bladepoint",
	"black myth: wukong",
	"snowbreak",
	"arena breakout",
	"once human",
	"where winds meet",
	"love and deepspace",
	"sword and fairy",
	"gujian",
	"tale of immortal",
	"amazing cultivation simulator",
}

// chineseLanguageMarkers feed the weak-signal fallback over the
// supported-languages field
var chineseLanguageMarkers = []string{
	"schinese",
	"simplified chinese",
}

// trustedPublishers is the score-reduction allowlist; matching is exact
// case-insensitive equality against a developer or publisher name,
// never substring
var trustedPublishers = []string{
	"Valve",
	"CD PROJEKT RED",
	"Paradox Interactive",
	"Larian Studios",
	"Supergiant Games",
	"Team Cherry",
	"ConcernedApe",
	"Re-Logic",
	"Klei Entertainment",
	"Coffee Stain Publishing",
	"Hempuli Oy",
}

// drmPattern maps a lowercase scan pattern to a vendor label
type drmPattern struct {
	pattern string
	label   string
}

// drmPatterns is ordered; every matching label is collected (deduplicated,
// insertion order preserved)
var drmPatterns = []drmPattern{
	{"denuvo", "Denuvo Anti-Tamper"},
	{"securom", "SecuROM"},
	{"starforce", "StarForce"},
	{"vmprotect", "VMProtect"},
	{"arxan", "Arxan"},
	{"tages", "TAGES"},
	{"3rd-party drm", "DRM (unspecified)"},
	{"third-party drm", "DRM (unspecified)"},
}

// accountPattern maps a lowercase scan pattern to a third-party
// account/launcher label
type accountPattern struct {
	pattern string
	label   string
}

// accountPatterns is ordered; only the first match is kept
var accountPatterns = []accountPattern{
	{"ubisoft connect", "Ubisoft Connect"},
	{"uplay", "Ubisoft Connect"},
	{"ea app", "EA App"},
	{"ea account", "EA App"},
	{"origin account", "EA App"},
	{"rockstar games launcher", "Rockstar Games Launcher"},
	{"rockstar games social club", "Rockstar Games Social Club"},
	{"epic games account", "Epic Games"},
	{"epic online services", "Epic Games"},
	{"battle.net", "Battle.net"},
	{"battlenet", "Battle.net"},
	{"bethesda.net", "Bethesda.net"},
	{"2k account", "2K Account"},
	{"my.games", "MY.GAMES"},
	{"hoyoverse account", "HoYoverse Account"},
	{"mihoyo account", "HoYoverse Account"},
	{"netease account", "NetEase Account"},
	{"level infinite account", "Level Infinite Account"},
	{"square enix account", "Square Enix Account"},
	{"paradox account", "Paradox Account"},
	{"xbox live account", "Microsoft Account"},
	{"microsoft account", "Microsoft Account"},
}

// drmOverrides takes absolute precedence per app id: the configured string
// is returned verbatim as the notice and no scanning occurs
var drmOverrides = map[int]string{
	39210:   "Requires a Square Enix account and the official launcher",
	1172470: "EA App account required; Easy Anti-Cheat",
	1938090: "Battle.net account link; RICOCHET kernel-level driver",
}

// anticheatEntry describes one anti-cheat vendor keyword
type anticheatEntry struct {
	key    string // lowercase scan keyword
	label  string
	kernel bool
}

// anticheatTable is ordered; every matching key contributes its label and
// the raw key to the keyword trail. Short keys ("ace", "vac") are known to
// over-match; see the package comment.
var anticheatTable = []anticheatEntry{
	{"easy anti-cheat", "Easy Anti-Cheat", true},
	{"easyanticheat", "Easy Anti-Cheat", true},
	{"battleye", "BattlEye", true},
	{"vanguard", "Riot Vanguard", true},
	{"mhyprot", "HoYoProtect (mhyprot)", true},
	{"ace", "Anti-Cheat Expert (ACE)", true},
	{"anti-cheat expert", "Anti-Cheat Expert (ACE)", true},
	{"xigncode", "XIGNCODE3", true},
	{"gameguard", "nProtect GameGuard", true},
	{"nprotect", "nProtect GameGuard", true},
	{"hackshield", "AhnLab HackShield", true},
	{"faceit", "FACEIT Anti-Cheat", true},
	{"ricochet", "RICOCHET", true},
	{"denuvo anti-cheat", "Denuvo Anti-Cheat", true},
	{"punkbuster", "PunkBuster", false},
	{"fairfight", "FairFight", false},
	{"vac", "Valve Anti-Cheat (VAC)", false},
	{"treyarch anti-cheat", "Treyarch Anti-Cheat", false},
}

// kernelPhrases trigger the generic kernel-mode detection independently of
// the vendor table
var kernelPhrases = []string{
	"kernel-mode",
	"kernel mode",
	"kernel-level",
	"kernel level",
	"ring 0",
	"ring-0",
}

// Synthetic keyword-trail entries appended by the generic phrase tests
const (
	genericKernelKeyword    = "kernel-mode mention"
	genericAntiCheatKeyword = "anti-cheat mention"
)

// genericAntiCheatPhrases append genericAntiCheatKeyword to the trail
// without touching the kernel flag or the vendor set
var genericAntiCheatPhrases = []string{
	"anti-cheat",
	"anticheat",
}
