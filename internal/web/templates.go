package web

// pagesHTML holds the three page templates. Styling is intentionally bare.
const pagesHTML = `
{{define "board"}}<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>basic todo</title>
  </head>
  <body>
    <header>
      <h1>basic todo</h1>
      <div>
        <span>{{.Email}}</span>
        <form method="post" action="/sign-out"><button type="submit">Sign out</button></form>
      </div>
    </header>
    <main class="board">
      {{range .Columns}}
      <section class="day-column" data-day="{{.Day}}">
        <h2>{{.Label}}</h2>
        <ul>
          {{range .Todos}}
          <li data-id="{{.ID}}" {{if .Completed}}class="completed"{{end}}>{{.Text}}</li>
          {{end}}
        </ul>
        <form method="post" action="/api/todos" class="add-form">
          <input type="hidden" name="day" value="{{.Day}}" />
          <input type="text" name="text" placeholder="add a todo..." />
        </form>
      </section>
      {{end}}
    </main>
  </body>
</html>
{{end}}

{{define "auth"}}<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <title>{{.Title}} - basic todo</title>
  </head>
  <body>
    <main>
      <h1>{{.Title}}</h1>
      {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
      <form method="post" action="{{.Action}}">
        <input type="text" name="external_id" placeholder="identity" />
        <input type="email" name="email" placeholder="email" />
        <input type="text" name="first_name" placeholder="first name" />
        <input type="text" name="last_name" placeholder="last name" />
        <button type="submit">{{.Title}}</button>
      </form>
      {{if eq .Title "Sign in"}}
      <p><a href="/sign-up">Need an account? Sign up</a></p>
      {{else}}
      <p><a href="/sign-in">Already registered? Sign in</a></p>
      {{end}}
    </main>
  </body>
</html>
{{end}}

{{define "error"}}<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <title>basic todo</title>
  </head>
  <body>
    <main>
      <h2>Something went wrong</h2>
      <p>{{.}}</p>
      <form><button type="submit">Try Again</button></form>
    </main>
  </body>
</html>
{{end}}
`
