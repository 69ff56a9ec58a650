package pages

var AuthSuccess = `
<!DOCTYPE html>
<html>
<head>
    <title>Authorization Successful</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            line-height: 1.6;
            max-width: 800px;
            margin: 0 auto;
            padding: 20px;
            text-align: center;
        }
        h1 { color: #1DB954; }
    </style>
</head>
<body>
    <h1>Authorization Successful</h1>
    <p>Spotify is connected. You can close this window and generate playlists.</p>
</body>
</html>`

var AuthFailure = `
<!DOCTYPE html>
<html>
<head>
	<title>Authorization Failed</title>
	<style>
		body {
			font-family: Arial, sans-serif;
			line-height: 1.6;
			max-width: 800px;
			margin: 0 auto;
			padding: 20px;
			text-align: center;
		}
		h1 { color: #c0392b; }
	</style>
</head>
<body>
	<h1>Authorization Failed</h1>
	<pre>%s</pre>
</body>
</html>`
