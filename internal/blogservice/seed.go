package blogservice

// Categories is the fixed, ordered list offered to authors. The store accepts
// any category string.
var Categories = []string{"Finance", "Career", "Regulations", "Skills", "Technology"}

var coverImages = []string{
	"https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=800&h=400&fit=crop",
	"https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=800&h=400&fit=crop",
	"https://images.unsplash.com/photo-1504868584819-f8e8b4b6d7e3?w=800&h=400&fit=crop",
	"https://images.unsplash.com/photo-1555949963-ff9fe0c870eb?w=800&h=400&fit=crop",
}

// seedBlogs returns a fresh copy of the sample collection written to empty
// or unreadable storage.
func seedBlogs() []Blog {
	return []Blog{
		{
			ID:          "1",
			Title:       "The Future of Fintech in 2024",
			Description: "Exploring how AI and blockchain are reshaping financial services.",
			Content: `The intersection of finance and technology has never been more vibrant.

## The Rise of Automated Accounting

Automation is no longer a buzzword; it's a reality. Routine tasks like data entry and reconciliation are being automated at an unprecedented pace.

- Strategic financial planning and analysis
- Risk management and compliance auditing
- Advisory services for business growth

## Blockchain: Beyond Cryptocurrency

The immutable ledger provides a "single source of truth" that could eliminate the need for sampling in audits.

> "The accountant of the future will be a data scientist, a storyteller, and a strategic partner."

## Preparing for the Shift

To stay relevant, professionals must upskill in Python, PowerBI, and AI-driven ERP systems.`,
			Category:   "Finance",
			Tags:       []string{"Featured", "Fintech"},
			CoverImage: coverImages[0],
			Author:     "Arjun Mehta",
			ReadTime:   "5 min read",
			CreatedAt:  "2024-01-15",
		},
		{
			ID:          "2",
			Title:       "Ace Your CA Finals",
			Description: "Strategies to clear your exams in the first attempt without burning out.",
			Content: `Preparing for CA Finals requires a strategic approach.

## Create a Realistic Study Schedule

The key to success is consistency over intensity. Break down your syllabus into manageable chunks.

## Focus on Conceptual Clarity

Don't just memorize—understand. When you grasp the underlying concepts, you can tackle any variation.

## Practice Previous Year Papers

Nothing beats solving actual exam papers under timed conditions.`,
			Category:   "Career",
			Tags:       []string{"Study Tips"},
			CoverImage: coverImages[1],
			Author:     "Priya Sharma",
			ReadTime:   "4 min read",
			CreatedAt:  "2024-01-20",
		},
		{
			ID:          "3",
			Title:       "Understanding Tax Reforms",
			Description: "A breakdown of new tax laws and their impact on businesses.",
			Content: `The new tax reforms bring significant changes for businesses.

## Key Changes in Corporate Taxation

The revised structure aims to simplify compliance while encouraging investment.

## Impact on Small Businesses

SMEs will see reduced compliance burden and simplified filing procedures.`,
			Category:   "Regulations",
			Tags:       []string{"Taxation"},
			CoverImage: coverImages[2],
			Author:     "Vikram Singh",
			ReadTime:   "6 min read",
			CreatedAt:  "2024-01-25",
		},
	}
}
