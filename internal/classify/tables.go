package classify

// GitHubOrgURL is the base URL repository links are formed against.
const GitHubOrgURL = "https://github.com/tokamak-network"

// Category carries the visual metadata used by the infographic views.
type Category struct {
	Name  string
	Color string
	Bg    string
	Icon  string
}

// Categories is the fixed ecosystem taxonomy, in classification priority order.
// Keyword fallback walks this order and the first matching category wins.
var Categories = []Category{
	{Name: "Privacy & ZK", Color: "#7C3AED", Bg: "#F5F3FF", Icon: "🔒"},
	{Name: "DeFi & Staking", Color: "#2A72E5", Bg: "#EFF6FF", Icon: "💰"},
	{Name: "Core Infrastructure", Color: "#475569", Bg: "#F8FAFC", Icon: "🏗️"},
	{Name: "Platform & Services", Color: "#64748B", Bg: "#F1F5F9", Icon: "🖥️"},
	{Name: "Data & Analytics", Color: "#0EA5E9", Bg: "#F0F9FF", Icon: "📊"},
	{Name: "AI & Machine Learning", Color: "#EA580C", Bg: "#FFF7ED", Icon: "🧠"},
	{Name: "Automation & Tooling", Color: "#D97706", Bg: "#FFFBEB", Icon: "⚙️"},
	{Name: "Gaming & Social", Color: "#DC2626", Bg: "#FEF2F2", Icon: "🎮"},
	{Name: "Governance", Color: "#0D9488", Bg: "#F0FDFA", Icon: "🏛️"},
	{Name: "Research & Education", Color: "#CA8A04", Bg: "#FEFCE8", Icon: "📚"},
}

// DefaultCategory receives every repo no other rule claims.
const DefaultCategory = "Platform & Services"

// CategoryByName resolves category metadata; unknown names map to the default.
func CategoryByName(name string) Category {
	for _, c := range Categories {
		if c.Name == name {
			return c
		}
	}
	return CategoryByName(DefaultCategory)
}

// categoryKeywords drives the substring fallback for repos absent from the
// explicit table. Order matches Categories.
var categoryKeywords = map[string][]string{
	"Privacy & ZK":          {"zk", "priv", "proof", "snark"},
	"DeFi & Staking":        {"stak", "ton-", "swap", "defi", "bridge", "airdrop"},
	"Core Infrastructure":   {"thanos", "rollup", "node", "geth", "l1", "fraud", "dispute"},
	"Platform & Services":   {"trh", "platform", "hub", "desktop"},
	"Data & Analytics":      {"data", "report", "analyt", "monitor", "explorer"},
	"AI & Machine Learning": {"sentinai", "ai-layer", "ai-agent", "ml", "ai-kit"},
	"Automation & Tooling":  {"auto", "bot", "agent", "script", "tool", "cli", "setup"},
	"Gaming & Social":       {"game", "social", "nft", "market", "tokamon", "zodiac"},
	"Governance":            {"dao", "gov", "vote", "proposal"},
	"Research & Education":  {"research", "paper", "doc", "learn", "study", "whitepaper"},
}

// ProjectRepos maps internal project codenames to their curated repositories.
var ProjectRepos = map[string][]string{
	"Ooo": {
		"Tokamak-zk-EVM", "Tokamak-zk-EVM-contracts", "private-app-channel-manager",
		"tokamak-zkp-channel-manager-new", "TokamakL2JS", "Tokamak-zk-EVM-landing-page",
	},
	"Eco": {
		"ton-staking-v2", "tokamak-economics-whitepaper-v2", "RAT-frontend",
		"staking-community-version", "tokamak-dao-v2", "tokamak-landing-page",
	},
	"TRH": {
		"trh-sdk", "trh-backend", "trh-platform-ui", "DRB-node",
		"tokamak-thanos", "tokamak-rollup-hub-v2", "tokamak-thanos-stack", "tokamak-thanos-geth",
	},
}

// ProjectOrder fixes section ordering for project-grouped reports.
var ProjectOrder = []string{"Ooo", "Eco", "TRH"}

// SectionInfo is the static context block embedded into section prompts.
type SectionInfo struct {
	Number        string
	Title         string
	OverviewURL   string
	Context       string
	BusinessFocus string
}

var SectionInfoTechnical = map[string]SectionInfo{
	"Ooo": {
		Number:      "2.2",
		Title:       "Zero-Knowledge Proof-Based Private App Channels",
		OverviewURL: "https://medium.com/tokamak-network/project-tokamak-zk-evm-67483656fd21",
		Context:     "Tokamak Private App Channels enable users to create private channels for ZK-based transactions.",
	},
	"Eco": {
		Number:      "2.3",
		Title:       "Developing Decentralized Staking and Governance",
		OverviewURL: "https://tokamak.notion.site/49e44e989c514bd683e077c01cc8f143?pvs=25",
		Context:     "This team handles TON staking economics, whitepaper development, RAT verification system, and DAO governance.",
	},
	"TRH": {
		Number:      "2.4",
		Title:       "Advancing Developer-Centric Appchain Infrastructure",
		OverviewURL: "https://tokamak.notion.site/1433390669554ae5b09e400f4c9c0fd4?pvs=25",
		Context:     "Tokamak Rollup Hub provides on-demand L2 deployment infrastructure.",
	},
}

var SectionInfoPublic = map[string]SectionInfo{
	"Ooo": {
		Number:        "2.2",
		Title:         "Zero-Knowledge Proof-Based Private App Channels",
		Context:       "Revolutionary privacy technology that keeps your transactions completely confidential while maintaining full security on Ethereum. Users can conduct private DeFi transactions without revealing sensitive financial data.",
		BusinessFocus: "privacy technology, user experience, DeFi integration, data protection",
	},
	"Eco": {
		Number:        "2.3",
		Title:         "TON Staking & Governance: Building a Sustainable Token Economy",
		Context:       "Staking rewards for TON holders, transparent governance, economic security.",
		BusinessFocus: "staking rewards, governance participation, tokenomics",
	},
	"TRH": {
		Number:        "2.4",
		Title:         "Tokamak Rollup Hub: One-Click Layer 2 Deployment",
		Context:       "Rapid L2 deployment, cost-effective scaling, enterprise-ready infrastructure.",
		BusinessFocus: "ease of deployment, enterprise adoption, scalability",
	},
}

// DefaultClassification is the curated repo→category table. The first category
// listing a repo wins when a repo is listed twice.
var DefaultClassification = map[string][]string{
	"Privacy & ZK": {
		"Tokamak-zk-EVM", "Tokamak-zk-EVM-contracts", "private-app-channel-manager",
		"zk-dex-d1-private-voting", "dust-protocol", "zk-loot-box",
		"zk-mafia", "zk-dex", "zkdex-skills", "interactive-zkp-study",
	},
	"DeFi & Staking": {
		"ton-staking-v2", "delegate-staking-mvp", "RAT-frontend",
		"staking-community-version", "Staking-v3-local-infra", "vton-airdrop-simulator",
		"TON-total-supply", "erc8004-test", "tokamak-landing-page",
	},
	"Core Infrastructure": {
		"tokamak-thanos", "optimism", "DRB-node", "Commit-Reveal2",
		"Optimal-fraud-proof", "hybrid-dispute-emulator",
		"nexus-next-gen-smart-account-wallet-erc-4337",
	},
	"Platform & Services": {
		"trh-platform-ui", "trh-sdk", "trh-backend", "trh-platform",
		"trh-platform-desktop", "tokamak-app-hub", "thanos-bridge",
		"nftgame-zk-dex",
	},
	"Data & Analytics": {
		"tokamak-data-layer", "all-thing-eye", "bi-weekly-quarterly-reports",
		"Ooo-report-generator", "ECO-report-generator",
		"tokamak-thumbnail-generator",
	},
	"AI & Machine Learning": {
		"SentinAI", "Tokamak-AI-Layer", "tokamak-ai-agent",
		"ai-kits", "ai-tokamak", "ai-playgrounds",
		"smart-contract-audit-tool",
	},
	"Automation & Tooling": {
		"auto-research-press", "google-meet-analyze", "tokamak-architecht-bot",
		"crewcode", "ai-setup-guide", "agent-key-management",
		"24-7-playground", "eth-nanobot", "secure-vote",
	},
	"Gaming & Social": {
		"tokamon", "syndi", "Zodiac",
	},
	"Governance": {
		"tokamak-dao-v2", "tokamak-dao-agent", "dao-action-builder",
		"tokamak-agent-teams",
	},
	"Research & Education": {
		"tokamak-learning", "tokamak-network-pilot", "tokamak-hr",
		"TokamakL2JS",
	},
}

// DefaultDescriptions holds curated one-liners shown on repo cards.
var DefaultDescriptions = map[string]string{
	"Tokamak-zk-EVM":                   "Core ZK-EVM engine for private smart contract execution",
	"Tokamak-zk-EVM-contracts":         "On-chain contracts for ZK-EVM verification",
	"private-app-channel-manager":      "SDK for private application channels",
	"zk-dex-d1-private-voting":         "ZK-based private on-chain voting & DEX",
	"dust-protocol":                    "Privacy-focused confidential token transfers",
	"zk-loot-box":                      "ZK-powered randomized loot box mechanics",
	"zk-mafia":                         "ZK proof-based social deduction game",
	"zk-dex":                           "Zero-knowledge decentralized exchange",
	"zkdex-skills":                     "Skill system for ZK DEX platform",
	"interactive-zkp-study":            "Interactive zero-knowledge proof tutorials",
	"ton-staking-v2":                   "TON token staking platform v2",
	"delegate-staking-mvp":             "Delegated staking minimum viable product",
	"RAT-frontend":                     "Staking reward verification interface",
	"staking-community-version":        "Community staking dashboard",
	"Staking-v3-local-infra":           "Local infrastructure for staking v3 testing",
	"vton-airdrop-simulator":           "vTON airdrop simulation tool",
	"TON-total-supply":                 "TON token total supply tracker",
	"erc8004-test":                     "ERC-8004 standard testing implementation",
	"tokamak-landing-page":             "Main Tokamak Network website",
	"tokamak-thanos":                   "Optimistic rollup implementation for Ethereum",
	"optimism":                         "Optimism rollup fork & customizations",
	"DRB-node":                         "Distributed Random Beacon node",
	"Commit-Reveal2":                   "Commit-reveal scheme implementation v2",
	"Optimal-fraud-proof":              "Optimized fraud proof research",
	"hybrid-dispute-emulator":          "Hybrid dispute resolution emulator",
	"nexus-next-gen-smart-account-wallet-erc-4337": "ERC-4337 smart account wallet",
	"trh-platform-ui":             "Tokamak Rollup Hub dashboard UI",
	"trh-sdk":                     "SDK for deploying custom L2 rollups",
	"trh-backend":                 "Rollup Hub backend infrastructure",
	"trh-platform":                "Rollup Hub platform core",
	"trh-platform-desktop":        "Rollup Hub desktop application",
	"tokamak-app-hub":             "Tokamak application hub portal",
	"thanos-bridge":               "Thanos L2 bridge implementation",
	"nftgame-zk-dex":              "NFT gaming with ZK DEX integration",
	"tokamak-data-layer":          "Tokamak data layer infrastructure",
	"all-thing-eye":               "Comprehensive monitoring & observation tool",
	"bi-weekly-quarterly-reports": "Automated bi-weekly & quarterly report generator",
	"Ooo-report-generator":        "Out-of-office report generation tool",
	"ECO-report-generator":        "Ecosystem report generator",
	"tokamak-thumbnail-generator": "Automated thumbnail generation tool",
	"SentinAI":                    "AI-powered smart contract security analysis",
	"Tokamak-AI-Layer":            "AI integration layer for Tokamak ecosystem",
	"tokamak-ai-agent":            "AI agent for Tokamak operations",
	"ai-kits":                     "AI development toolkit & utilities",
	"ai-tokamak":                  "AI applications for Tokamak network",
	"ai-playgrounds":              "AI experimentation playground",
	"smart-contract-audit-tool":   "Automated smart contract auditing tool",
	"auto-research-press":         "Automated blockchain research publisher",
	"google-meet-analyze":         "Google Meet transcript analysis tool",
	"tokamak-architecht-bot":      "Architecture planning automation bot",
	"crewcode":                    "Collaborative coding automation framework",
	"ai-setup-guide":              "AI environment setup guide & scripts",
	"agent-key-management":        "Agent key & credential management",
	"24-7-playground":             "Always-on development sandbox",
	"eth-nanobot":                 "Ethereum micro-transaction automation",
	"secure-vote":                 "Secure voting system implementation",
	"tokamon":                     "Tokamak-themed collectible game",
	"syndi":                       "Social syndication & engagement platform",
	"Zodiac":                      "Zodiac-themed game mechanics & contracts",
	"tokamak-dao-v2":              "Decentralized governance platform v2",
	"tokamak-dao-agent":           "AI-powered DAO governance agent",
	"dao-action-builder":          "DAO proposal & action builder interface",
	"tokamak-agent-teams":         "Multi-agent team coordination for DAO",
	"tokamak-learning":            "Educational platform for Tokamak ecosystem",
	"tokamak-network-pilot":       "Tokamak network pilot program resources",
	"tokamak-hr":                  "Human resources management system",
	"TokamakL2JS":                 "JavaScript library for Tokamak L2 interaction",
}

// SynergyPairDescriptions keys are unordered category pairs, normalized by
// sorting the two names; see SynergyFor.
var SynergyPairDescriptions = map[[2]string]string{
	pair("Privacy & ZK", "DeFi & Staking"):                "ZK proof technology combined with staking protocols could enable privacy-preserving staking services where users earn rewards without exposing their positions.",
	pair("Privacy & ZK", "Core Infrastructure"):           "Integrating ZK proofs into the rollup infrastructure could provide private transaction processing at the L2 level, improving both privacy and scalability.",
	pair("Privacy & ZK", "Governance"):                    "ZK-based governance would allow token holders to vote on proposals without revealing their voting power or identity, strengthening democratic participation.",
	pair("Privacy & ZK", "Gaming & Social"):               "ZK proofs can enable verifiably fair game mechanics and private social interactions, creating trustless gaming experiences.",
	pair("DeFi & Staking", "Core Infrastructure"):         "Tighter integration between staking contracts and rollup infrastructure could reduce gas costs for staking operations and enable cross-L2 staking.",
	pair("DeFi & Staking", "Governance"):                  "Combining staking with governance enables stake-weighted voting and delegation mechanisms, aligning economic incentives with protocol decision-making.",
	pair("DeFi & Staking", "Platform & Services"):         "Embedding staking functionality into the Rollup Hub platform would let L2 operators offer native staking to their users out of the box.",
	pair("Core Infrastructure", "Platform & Services"):    "Deeper integration between Thanos rollup stack and the Rollup Hub platform could streamline L2 deployment pipelines and operational tooling.",
	pair("Core Infrastructure", "AI & Machine Learning"):  "AI-driven monitoring and anomaly detection for rollup nodes could improve infrastructure reliability and automate incident response.",
	pair("AI & Machine Learning", "Data & Analytics"):     "Combining AI capabilities with analytics infrastructure could enable predictive insights on ecosystem health and development velocity.",
	pair("AI & Machine Learning", "Automation & Tooling"): "AI-powered automation tools could assist with code review, smart contract auditing, and developer onboarding workflows.",
	pair("Data & Analytics", "Governance"):                "Data-driven governance dashboards could surface key metrics to inform proposal discussions and track the impact of governance decisions.",
	pair("Platform & Services", "Automation & Tooling"):   "Automating platform deployment and monitoring workflows would reduce operational overhead for Rollup Hub users.",
	pair("Gaming & Social", "DeFi & Staking"):             "Gaming platforms with integrated token staking could create play-to-earn mechanics backed by real DeFi yield.",
	pair("Research & Education", "Privacy & ZK"):          "Educational content on ZK proofs and interactive tutorials could accelerate developer onboarding into the privacy stack.",
}

func pair(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

// SynergyFor returns the canned synergy description for two categories, if any.
func SynergyFor(a, b string) (string, bool) {
	s, ok := SynergyPairDescriptions[pair(a, b)]
	return s, ok
}
