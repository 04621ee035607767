package main

// sample is a benchmark input.
type sample struct {
	Name string
	Text string
}

// benchSamples are work messages of increasing length, written with the
// kind of mistakes the correct operation is meant to fix.
var benchSamples = []sample{
	{
		Name: "tiny",
		Text: "Can you review the PR when you have time? I think is ready but not sure about the error handling part.",
	},
	{
		Name: "short",
		Text: `Hi team,

The deployment yesterday went smooth. All the services are running fine and we didn't saw any errors in the logs so far. The only thing is that the response time for the search endpoint is a bit higher than what we expected, around 450ms instead of 300ms. I will investigate this today and keep you posted.`,
	},
	{
		Name: "medium",
		Text: `Hi Sarah,

Following up on the standup. I been looking into the authentication issue that several users reported last week. The problem is related to how we handle token refresh when the session expires while the user is in the middle of filling a long form.

What happens is: the token expires, the refresh endpoint returns a new token, but the original request that triggered the refresh gets lost because we don't retry it. The user loses their form data which is very frustrating specially for the onboarding form that has like 15 fields.

I think the best approach would be a request queue that holds pending requests while the token is being refreshed, and then replays them once we got the new token. I can have a draft PR ready by Thursday if you agree.`,
	},
}
