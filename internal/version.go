package internal

// Version is the tweetlate release version
const Version = "0.3.0"
