package post

// SamplePosts 為空資料表時寫入的範例文章，順序即寫入順序。
var SamplePosts = []Draft{
	{
		Title:   "Welcome to My Blog",
		Content: "This is my first blog post! I'm excited to share my thoughts and experiences with you. Stay tuned for more interesting content.",
		Author:  "Admin",
	},
	{
		Title:   "Getting Started with Node.js",
		Content: "Node.js is a powerful JavaScript runtime that allows you to build scalable network applications. In this post, I'll share some tips for beginners.",
		Author:  "Admin",
	},
	{
		Title:   "Bootstrap for Beautiful UIs",
		Content: "Bootstrap is a popular CSS framework that makes it easy to create responsive and beautiful user interfaces. Let's explore its features together.",
		Author:  "Admin",
	},
	{
		Title:   "PostgreSQL Integration",
		Content: "Now our blog is powered by PostgreSQL! This provides better data persistence, scalability, and reliability compared to in-memory storage.",
		Author:  "Admin",
	},
}
